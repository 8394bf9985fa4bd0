package repositories

// EdgeKind selects one of the many-to-many relations a user can toggle.
type EdgeKind string

const (
	// EdgeFavorite links a user (subject) to an article (object).
	EdgeFavorite EdgeKind = "favorite"
	// EdgeBookmark links a user (subject) to an article (object).
	EdgeBookmark EdgeKind = "bookmark"
	// EdgeFollow links a follower (subject) to a followee (object).
	EdgeFollow EdgeKind = "follow"
)

// EdgeRepository stores existence-relations between a subject (the acting
// user) and an object (an article, or the user being followed). Add and
// Remove are idempotent: adding a present edge and removing an absent one
// are both no-ops.
type EdgeRepository interface {
	Exists(kind EdgeKind, subjectID, objectID string) (bool, error)
	Add(kind EdgeKind, subjectID, objectID string) error
	Remove(kind EdgeKind, subjectID, objectID string) error
	// Count returns the number of edges pointing at the object, e.g. an
	// article's favorites count or a user's follower count.
	Count(kind EdgeKind, objectID string) (int64, error)
	// SubjectCount returns the number of edges originating from the subject,
	// e.g. a user's followee count.
	SubjectCount(kind EdgeKind, subjectID string) (int64, error)
}
