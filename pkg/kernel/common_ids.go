package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

// Role is the authenticated user's role as issued by the identity provider
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string { return string(r) }

// Identity is the authenticated caller, owned by whoever issued the session
type Identity struct {
	UserID UserID `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsAuthenticated reports whether the identity carries a user id
func (i Identity) IsAuthenticated() bool { return !i.UserID.IsEmpty() }

// IsJobSeeker reports whether the identity may use the job-seeker screens
func (i Identity) IsJobSeeker() bool {
	return i.IsAuthenticated() && i.Role == RoleJobSeeker
}
