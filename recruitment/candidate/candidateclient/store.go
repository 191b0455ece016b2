package candidateclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/profile"
)

const maxErrorBody = 64 << 10

// Status is the outcome of the last asynchronous operation
type Status struct {
	Loading bool
	Err     error
	Success bool
	Intent  candidate.IntentKind
}

// Config configures a Store
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Storage    LocalStorage
}

// Store is the backend-facing state container shared by every screen. It
// proxies the REST calls, caches the last known profile and candidate, and
// mirrors the profile to durable local storage.
type Store struct {
	baseURL *url.URL
	client  *http.Client
	storage LocalStorage

	mu        sync.RWMutex
	profile   *profile.Profile
	candidate candidate.Record
	status    Status

	wg sync.WaitGroup
}

func NewStore(cfg Config) (*Store, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", cfg.BaseURL)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	storage := cfg.Storage
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{baseURL: base, client: client, storage: storage}, nil
}

// Restore loads the mirrored profile from local storage into the cache
func (s *Store) Restore(ctx context.Context) error {
	data, ok, err := s.storage.Get(ctx, KeyProfile)
	if err != nil || !ok {
		return err
	}
	var p profile.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		logx.Warnf("discarding unreadable cached profile: %v", err)
		return s.storage.Delete(ctx, KeyProfile)
	}
	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()
	return nil
}

// ============================================================================
// Token
// ============================================================================

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.storage.Set(ctx, KeyToken, []byte(strings.TrimSpace(token)))
}

// Token returns the stored bearer token, "" when logged out
func (s *Store) Token(ctx context.Context) (string, error) {
	data, _, err := s.storage.Get(ctx, KeyToken)
	return string(data), err
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.storage.Delete(ctx, KeyToken)
}

// ============================================================================
// Profile
// ============================================================================

// Profile returns the cached profile, nil before the first fetch
func (s *Store) Profile() *profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// FetchProfile loads GET /api/profile/me and refreshes the cache
func (s *Store) FetchProfile(ctx context.Context) (*profile.Profile, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, profile.ErrNotAuthenticated()
	}

	var p profile.Profile
	if err := s.getJSON(ctx, "/api/profile/me", token, &p, profile.ErrFetchFailed); err != nil {
		s.setError(err)
		return nil, err
	}
	if err := s.SetProfile(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetProfile replaces the cached profile and its durable copy
func (s *Store) SetProfile(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return s.ClearProfile(ctx)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.storage.Set(ctx, KeyProfile, data); err != nil {
		return err
	}
	cp := *p
	s.mu.Lock()
	s.profile = &cp
	s.mu.Unlock()
	return nil
}

// ClearProfile drops the cached profile and its durable copy
func (s *Store) ClearProfile(ctx context.Context) error {
	s.mu.Lock()
	s.profile = nil
	s.candidate = nil
	s.mu.Unlock()
	return s.storage.Delete(ctx, KeyProfile)
}

// ============================================================================
// Candidate
// ============================================================================

// Candidate returns the cached candidate record, nil before the first fetch
func (s *Store) Candidate() candidate.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.candidate == nil {
		return nil
	}
	out := make(candidate.Record, len(s.candidate))
	for k, v := range s.candidate {
		out[k] = v
	}
	return out
}

// FetchCandidate loads GET /candidate/{userID}
func (s *Store) FetchCandidate(ctx context.Context, userID kernel.UserID) (candidate.Record, error) {
	if userID.IsEmpty() {
		return nil, candidate.ErrNotAuthenticated()
	}
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	path := "/candidate/" + url.PathEscape(userID.String())
	if err := s.getJSON(ctx, path, token, &raw, candidate.ErrBackendUnavailable); err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, candidate.ErrCandidateNotFound().WithCause(err).WithDetail("user_id", userID.String())
		}
		s.setError(err)
		return nil, err
	}

	rec, err := candidate.DecodeRecord(raw)
	if err != nil {
		return nil, candidate.ErrBackendUnavailable().WithCause(err)
	}
	s.mu.Lock()
	s.candidate = rec
	s.mu.Unlock()
	return rec, nil
}

// Dispatch posts the intent in the background and calls done with the result.
// Errors end up in Status until dismissed; a cancelled context is not an error
// worth showing.
func (s *Store) Dispatch(ctx context.Context, intent candidate.SubmitIntent, done func(candidate.Record, error)) {
	s.mu.Lock()
	s.status = Status{Loading: true, Intent: intent.Kind}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		rec, err := s.submit(ctx, intent)

		s.mu.Lock()
		switch {
		case err == nil:
			s.candidate = rec
			s.status = Status{Success: true, Intent: intent.Kind}
		case errors.Is(err, context.Canceled):
			s.status = Status{Intent: intent.Kind}
		default:
			s.status = Status{Err: err, Intent: intent.Kind}
		}
		s.mu.Unlock()

		if err != nil {
			logx.Errorf("%s candidate failed: %v", intent.Kind, err)
		} else {
			logx.Infof("%s candidate %s succeeded", intent.Kind, rec.ID())
		}
		if done != nil {
			done(rec, err)
		}
	}()
}

func (s *Store) submit(ctx context.Context, intent candidate.SubmitIntent) (candidate.Record, error) {
	body, contentType, err := intent.Payload.Encode()
	if err != nil {
		return nil, candidate.ErrInvalidPayload().WithCause(err)
	}
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("/candidate"), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	setBearer(req, token)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, candidate.ErrBackendUnavailable().WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, responseError(resp, candidate.ErrBackendUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, candidate.ErrBackendUnavailable().WithCause(err)
	}
	rec, err := candidate.DecodeRecord(data)
	if err != nil {
		return nil, candidate.ErrBackendUnavailable().WithCause(err)
	}
	return rec, nil
}

// ============================================================================
// Status
// ============================================================================

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// DismissError clears the banner error without retrying anything
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Err = nil
}

// Wait blocks until every dispatched operation has finished
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) setError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Status{Err: err}
}

// ============================================================================
// HTTP helpers
// ============================================================================

func (s *Store) endpoint(path string) string {
	return s.baseURL.String() + path
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (s *Store) getJSON(ctx context.Context, path, token string, out any, fallback func() *errx.Error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	setBearer(req, token)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fallback().WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp, fallback)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fallback().WithCause(err).WithDetail("reason", "malformed response")
	}
	return nil
}

type errorBody struct {
	Error   string         `json:"error"`
	Code    errx.Code      `json:"code"`
	Type    errx.Type      `json:"type"`
	Details map[string]any `json:"details"`
}

// responseError rebuilds the backend's error from a non-2xx response. The
// "error" field carries the message; code and type survive when present.
func responseError(resp *http.Response, fallback func() *errx.Error) *errx.Error {
	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(data, &body)

	e := fallback()
	if body.Error != "" {
		e.Message = body.Error
	} else if text := strings.TrimSpace(string(data)); text != "" && len(body.Code) == 0 && !json.Valid(data) {
		e.Message = text
	}
	if body.Code != "" {
		e.Code = body.Code
	}
	if body.Type != "" {
		e.Type = body.Type
	} else {
		e.Type = errx.TypeForStatus(resp.StatusCode)
	}
	e.HTTPStatus = resp.StatusCode
	return e.WithDetails(body.Details)
}
