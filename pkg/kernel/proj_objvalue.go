package kernel

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Email is a loosely checked address: text@text.text
type Email string

func (e Email) String() string { return string(e) }

// IsValid checks the text@text.text shape, nothing more
func (e Email) IsValid() bool {
	return emailPattern.MatchString(strings.TrimSpace(string(e)))
}

// Phone is a 10 digit mobile number
type Phone string

func (p Phone) String() string { return string(p) }

// IsValid checks for exactly 10 digits
func (p Phone) IsValid() bool {
	return phonePattern.MatchString(strings.TrimSpace(string(p)))
}

// BucketURL is the public location of a stored object
type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return string(b) == "" }
