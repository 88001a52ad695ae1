package model

// Role identifies which side of the marketplace a user acts on.
type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleClient     Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleFreelancer || r == RoleClient
}

// Job types, levels and statuses.
const (
	JobTypeFixedPrice = "Fixed Price"
	JobTypeHourly     = "Hourly"

	LevelEntry        = "Entry Level"
	LevelIntermediate = "Intermediate"
	LevelExpert       = "Expert"

	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Proposal statuses.
const (
	ProposalPending  = "pending"
	ProposalAccepted = "accepted"
	ProposalRejected = "rejected"
)

// Contract statuses.
const (
	ContractActive    = "active"
	ContractCompleted = "completed"
)

// Notification types.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationAlert   = "alert"
)

// User is the single logged-in account of a store.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       Role     `json:"role"`
	Avatar     string   `json:"avatar"`
	Headline   string   `json:"headline,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Location   string   `json:"location,omitempty"`
	HourlyRate string   `json:"hourlyRate,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// ProfileUpdate carries the user fields to overwrite. Nil fields are left alone.
type ProfileUpdate struct {
	Name       *string   `json:"name,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Avatar     *string   `json:"avatar,omitempty"`
	Headline   *string   `json:"headline,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	Location   *string   `json:"location,omitempty"`
	HourlyRate *string   `json:"hourlyRate,omitempty"`
	Skills     *[]string `json:"skills,omitempty"`
}

// Apply merges the non-nil fields of p into u.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Headline != nil {
		u.Headline = *p.Headline
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.HourlyRate != nil {
		u.HourlyRate = *p.HourlyRate
	}
	if p.Skills != nil {
		u.Skills = append([]string(nil), (*p.Skills)...)
	}
}

// Job is a posting owned by a client. Budget and PostedTime are display strings.
type Job struct {
	ID             string   `json:"id"`
	ClientID       string   `json:"clientId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Budget         string   `json:"budget"`
	Type           string   `json:"type"`
	Level          string   `json:"level"`
	PostedTime     string   `json:"postedTime"`
	Tags           []string `json:"tags"`
	ClientRating   float64  `json:"clientRating"`
	ReviewCount    int      `json:"reviewCount"`
	Verified       bool     `json:"verified"`
	ProposalsCount int      `json:"proposalsCount"` // denormalized count of proposals referencing the job
	IsNew          bool     `json:"isNew,omitempty"`
	Status         string   `json:"status,omitempty"`
}

// JobDraft holds the client-supplied fields of a new job.
type JobDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Proposal is a freelancer's application to a job. The freelancer fields are a
// snapshot of the user taken at submission time.
type Proposal struct {
	ID               string `json:"id"`
	JobID            string `json:"jobId"`
	FreelancerID     string `json:"freelancerId"`
	FreelancerName   string `json:"freelancerName"`
	FreelancerAvatar string `json:"freelancerAvatar"`
	CoverLetter      string `json:"coverLetter"`
	Status           string `json:"status"`
	SubmittedAt      string `json:"submittedAt"`
	MatchScore       int    `json:"matchScore,omitempty"`
}

// Contract is created when a client hires a freelancer for a job.
type Contract struct {
	ID             string `json:"id"`
	JobID          string `json:"jobId"`
	JobTitle       string `json:"jobTitle"`
	ClientID       string `json:"clientId"`
	FreelancerID   string `json:"freelancerId"`
	FreelancerName string `json:"freelancerName"`
	Amount         string `json:"amount"`
	Status         string `json:"status"`
	StartDate      string `json:"startDate"`
}

// Notification is an entry of the notification feed.
type Notification struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	IsRead bool   `json:"isRead"`
	Type   string `json:"type"`
}

// Attachment describes a file sent along with a message.
type Attachment struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Type string `json:"type"`
}

// Message is one entry of a chat thread.
type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	Text       string      `json:"text"`
	Timestamp  string      `json:"timestamp"`
	IsMe       bool        `json:"isMe"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// ChatContact is an entry of the messaging directory.
type ChatContact struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Avatar          string `json:"avatar"`
	IsOnline        bool   `json:"isOnline"`
	LastMessage     string `json:"lastMessage"`
	LastMessageTime string `json:"lastMessageTime"`
	UnreadCount     int    `json:"unreadCount"`
}

// ProposalView joins a proposal with its job and, if one exists, the job's contract.
type ProposalView struct {
	Proposal Proposal  `json:"proposal"`
	Job      Job       `json:"job"`
	Contract *Contract `json:"contract,omitempty"`
}
