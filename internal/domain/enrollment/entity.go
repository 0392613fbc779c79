package enrollment

import (
	"errors"
	"time"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"

	"github.com/google/uuid"
)

var ErrInvalidSource = errors.New("invalid enrollment source")

// Source records how the enrollment came to be: through a confirmed payment
// or through a zero-amount checkout that never touched the provider.
type Source string

const (
	SourcePaid Source = "paid"
	SourceFree Source = "free"
)

func (s Source) String() string {
	return string(s)
}

func NewSource(raw string) (Source, error) {
	s := Source(raw)
	switch s {
	case SourcePaid, SourceFree:
		return s, nil
	default:
		return "", ErrInvalidSource
	}
}

// Enrollment ties a member to a course. The (member, course) pair is unique;
// a second enrollment attempt is a no-op success, enforced at the storage
// layer.
type Enrollment struct {
	id         uuid.UUID
	memberID   uuid.UUID
	memberType member.Type
	courseID   uuid.UUID
	source     Source
	createdAt  time.Time
}

func NewEnrollment(id, memberID uuid.UUID, memberType member.Type, courseID uuid.UUID, source Source) *Enrollment {
	return &Enrollment{
		id:         id,
		memberID:   memberID,
		memberType: memberType,
		courseID:   courseID,
		source:     source,
	}
}

func (e *Enrollment) ID() uuid.UUID           { return e.id }
func (e *Enrollment) MemberID() uuid.UUID     { return e.memberID }
func (e *Enrollment) MemberType() member.Type { return e.memberType }
func (e *Enrollment) CourseID() uuid.UUID     { return e.courseID }
func (e *Enrollment) Source() Source          { return e.source }
func (e *Enrollment) CreatedAt() time.Time    { return e.createdAt }
