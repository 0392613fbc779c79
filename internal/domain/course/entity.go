package course

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle   = errors.New("course title must not be empty")
	ErrNegativePrice  = errors.New("course price cannot be negative")
	ErrInvalidStatus  = errors.New("invalid course status")
	ErrNotApprovable  = errors.New("only pending courses can be approved or rejected")
	ErrNotPurchasable = errors.New("course is not approved for purchase")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func NewStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Course is a trainer-submitted offering. Content (videos, materials) lives
// with the object-storage collaborator; only the module count is tracked here.
type Course struct {
	id          uuid.UUID
	trainerID   uuid.UUID
	title       string
	description string
	priceCents  int64
	moduleCount int32
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCourse(id, trainerID uuid.UUID, title, description string, priceCents int64, moduleCount int32) (*Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if moduleCount < 0 {
		moduleCount = 0
	}

	return &Course{
		id:          id,
		trainerID:   trainerID,
		title:       title,
		description: strings.TrimSpace(description),
		priceCents:  priceCents,
		moduleCount: moduleCount,
		status:      StatusPending,
	}, nil
}

// Rehydrate rebuilds a Course from persisted state without re-running the
// submission rules.
func Rehydrate(id, trainerID uuid.UUID, title, description string, priceCents int64, moduleCount int32, status Status, createdAt, updatedAt time.Time) *Course {
	return &Course{
		id:          id,
		trainerID:   trainerID,
		title:       title,
		description: description,
		priceCents:  priceCents,
		moduleCount: moduleCount,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Course) CanReview() bool {
	return c.status == StatusPending
}

func (c *Course) IsPurchasable() bool {
	return c.status == StatusApproved
}

func (c *Course) ID() uuid.UUID        { return c.id }
func (c *Course) TrainerID() uuid.UUID { return c.trainerID }
func (c *Course) Title() string        { return c.title }
func (c *Course) Description() string  { return c.description }
func (c *Course) PriceCents() int64    { return c.priceCents }
func (c *Course) ModuleCount() int32   { return c.moduleCount }
func (c *Course) Status() Status       { return c.status }
func (c *Course) CreatedAt() time.Time { return c.createdAt }
func (c *Course) UpdatedAt() time.Time { return c.updatedAt }
