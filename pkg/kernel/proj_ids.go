package kernel

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (r CandidateID) String() string       { return string(r) }
func (r CandidateID) IsEmpty() bool        { return string(r) == "" }

type ResumeJobID string

func NewResumeJobID(id string) ResumeJobID { return ResumeJobID(id) }
func (r ResumeJobID) String() string       { return string(r) }
func (r ResumeJobID) IsEmpty() bool        { return string(r) == "" }
