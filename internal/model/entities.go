package model

import "time"

// Component lifecycle status values.
const (
	ComponentActive     = "active"
	ComponentDeprecated = "deprecated"
	ComponentPlanned    = "planned"
)

// Decision status values, forming the state machine in spec §4.5.
const (
	DecisionProposed    = "proposed"
	DecisionApproved    = "approved"
	DecisionImplemented = "implemented"
	DecisionFailed      = "failed"
)

// Rule status values.
const (
	RuleActive     = "active"
	RuleDeprecated = "deprecated"
)

// ID prefixes enforced by InvalidArgument validation (spec §7).
const (
	PrefixComponent = "comp-"
	PrefixDecision  = "dec-"
	PrefixRule      = "rule-"
	PrefixFile      = "file-"
	PrefixTag       = "tag-"
	PrefixContext   = "ctx-"
)

// Repository is the per-branch root of a logical repository. Its own id is
// "{name}:{branch}" rather than a graph_unique_id triple, since it has no
// enclosing repository/branch of its own.
type Repository struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Branch    string    `json:"branch"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Metadata holds a project's free-form, schema-free JSON configuration blob.
type Metadata struct {
	GraphUniqueID string    `json:"graph_unique_id"`
	ID            string    `json:"id"`
	Repository    string    `json:"repository"`
	Branch        string    `json:"branch"`
	Name          string    `json:"name"`
	Content       string    `json:"content"` // JSON-encoded
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Context is an observation recorded by an agent, optionally tied to an
// issue, governing a Component, Decision, or Rule via CONTEXT_OF.
type Context struct {
	GraphUniqueID string    `json:"graph_unique_id"`
	ID            string    `json:"id"`
	Repository    string    `json:"repository"`
	Branch        string    `json:"branch"`
	Agent         string    `json:"agent"`
	Summary       string    `json:"summary"`
	Observation   string    `json:"observation"`
	Date          time.Time `json:"date"`
	Issue         string    `json:"issue,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Component is an architectural unit. DependsOn holds the logical ids of
// its dependencies as declared by the agent; some of these may not yet
// exist as nodes (invariant 5), in which case no DEPENDS_ON edge exists for
// them until the target is created.
type Component struct {
	GraphUniqueID string    `json:"graph_unique_id"`
	ID            string    `json:"id"`
	Repository    string    `json:"repository"`
	Branch        string    `json:"branch"`
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	Status        string    `json:"status"`
	DependsOn     []string  `json:"depends_on"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Decision records an architectural decision and its approval state.
type Decision struct {
	GraphUniqueID string    `json:"graph_unique_id"`
	ID            string    `json:"id"`
	Repository    string    `json:"repository"`
	Branch        string    `json:"branch"`
	Name          string    `json:"name"`
	Date          time.Time `json:"date"`
	Context       string    `json:"context"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Rule is a standing convention agents must follow, with trigger phrases
// that hint when it applies.
type Rule struct {
	GraphUniqueID string    `json:"graph_unique_id"`
	ID            string    `json:"id"`
	Repository    string    `json:"repository"`
	Branch        string    `json:"branch"`
	Name          string    `json:"name"`
	Created       time.Time `json:"created"`
	Content       string    `json:"content"`
	Triggers      []string  `json:"triggers"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// File is a source file tracked against one or more Components via
// CONTAINS_FILE.
type File struct {
	GraphUniqueID string    `json:"graph_unique_id"`
	ID            string    `json:"id"`
	Repository    string    `json:"repository"`
	Branch        string    `json:"branch"`
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	Language      string    `json:"language,omitempty"`
	Metrics       string    `json:"metrics,omitempty"` // JSON-encoded
	ContentHash   string    `json:"content_hash,omitempty"`
	MimeType      string    `json:"mime_type,omitempty"`
	SizeBytes     int64     `json:"size_bytes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Tag is global to a project-root database; it is never scoped to a branch.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AllowedDecisionTransitions enumerates the legal Decision state machine
// edges: proposed -> approved -> {implemented | failed}, terminal otherwise.
var AllowedDecisionTransitions = map[string][]string{
	DecisionProposed:    {DecisionApproved},
	DecisionApproved:    {DecisionImplemented, DecisionFailed},
	DecisionImplemented: {},
	DecisionFailed:      {},
}
