package ops

import (
	"context"
	"time"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/validate"
)

// UpsertComponentArgs carries the fields accepted by the component tool.
type UpsertComponentArgs struct {
	Scope     model.Scope
	ID        string
	Name      string
	Kind      string
	Status    string
	DependsOn []string
}

// UpsertComponent MERGEs a Component node, validating its id prefix and
// status enum before delegating to the gateway.
func UpsertComponent(ctx context.Context, d *Deps, args UpsertComponentArgs) (*EntityResult, error) {
	if err := validate.RequireScope(args.Scope); err != nil {
		return nil, err
	}
	if err := validate.ID(args.ID, model.PrefixComponent, "component"); err != nil {
		return nil, err
	}
	status := args.Status
	if status == "" {
		status = model.ComponentActive
	}
	if err := validate.Enum("status", status, model.ComponentActive, model.ComponentDeprecated, model.ComponentPlanned); err != nil {
		return nil, err
	}
	if _, err := d.Repository.Ensure(ctx, args.Scope.Repository, args.Scope.Branch); err != nil {
		return nil, err
	}

	c, err := d.Component.Upsert(ctx, args.Scope, &model.Component{
		ID: args.ID, Name: args.Name, Kind: args.Kind, Status: status, DependsOn: args.DependsOn,
	})
	if err != nil {
		return nil, err
	}
	return &EntityResult{Entity: c}, nil
}

// UpsertDecisionArgs carries the fields accepted by the decision tool.
type UpsertDecisionArgs struct {
	Scope       model.Scope
	ID          string
	Name        string
	Date        time.Time
	Context     string
	Status      string
	ComponentID string // optional: if set, LinkToComponent is called after upsert
}

// UpsertDecision MERGEs a Decision node, validating its id prefix, status
// enum, and — when the node already exists — the Decision state machine
// transition from its current status to the requested one.
func UpsertDecision(ctx context.Context, d *Deps, args UpsertDecisionArgs) (*EntityResult, error) {
	if err := validate.RequireScope(args.Scope); err != nil {
		return nil, err
	}
	if err := validate.ID(args.ID, model.PrefixDecision, "decision"); err != nil {
		return nil, err
	}
	status := args.Status
	if status == "" {
		status = model.DecisionProposed
	}
	if err := validate.Enum("status", status,
		model.DecisionProposed, model.DecisionApproved, model.DecisionImplemented, model.DecisionFailed); err != nil {
		return nil, err
	}

	existing, err := d.Decision.FindByID(ctx, args.Scope, args.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := validate.DecisionTransition(existing.Status, status); err != nil {
			return nil, err
		}
	}

	if _, err := d.Repository.Ensure(ctx, args.Scope.Repository, args.Scope.Branch); err != nil {
		return nil, err
	}

	date := args.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	dec, err := d.Decision.Upsert(ctx, args.Scope, &model.Decision{
		ID: args.ID, Name: args.Name, Date: date, Context: args.Context, Status: status,
	})
	if err != nil {
		return nil, err
	}

	if args.ComponentID != "" {
		componentGID := args.Scope.GraphUniqueID(args.ComponentID)
		if err := d.Decision.LinkToComponent(ctx, dec.GraphUniqueID, componentGID); err != nil {
			return nil, err
		}
	}

	return &EntityResult{Entity: dec}, nil
}

// UpsertRuleArgs carries the fields accepted by the rule tool.
type UpsertRuleArgs struct {
	Scope    model.Scope
	ID       string
	Name     string
	Created  time.Time
	Content  string
	Triggers []string
	Status   string
}

// UpsertRule MERGEs a Rule node.
func UpsertRule(ctx context.Context, d *Deps, args UpsertRuleArgs) (*EntityResult, error) {
	if err := validate.RequireScope(args.Scope); err != nil {
		return nil, err
	}
	if err := validate.ID(args.ID, model.PrefixRule, "rule"); err != nil {
		return nil, err
	}
	status := args.Status
	if status == "" {
		status = model.RuleActive
	}
	if err := validate.Enum("status", status, model.RuleActive, model.RuleDeprecated); err != nil {
		return nil, err
	}
	if _, err := d.Repository.Ensure(ctx, args.Scope.Repository, args.Scope.Branch); err != nil {
		return nil, err
	}

	created := args.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	r, err := d.Rule.Upsert(ctx, args.Scope, &model.Rule{
		ID: args.ID, Name: args.Name, Created: created, Content: args.Content, Triggers: args.Triggers, Status: status,
	})
	if err != nil {
		return nil, err
	}
	return &EntityResult{Entity: r}, nil
}

// UpsertMetadataArgs carries the fields accepted by the metadata tool.
type UpsertMetadataArgs struct {
	Scope   model.Scope
	ID      string
	Name    string
	Content string
}

// UpsertMetadata MERGEs a Metadata node.
func UpsertMetadata(ctx context.Context, d *Deps, args UpsertMetadataArgs) (*EntityResult, error) {
	if err := validate.RequireScope(args.Scope); err != nil {
		return nil, err
	}
	if err := validate.NonEmpty("id", args.ID); err != nil {
		return nil, err
	}
	if _, err := d.Repository.Ensure(ctx, args.Scope.Repository, args.Scope.Branch); err != nil {
		return nil, err
	}
	m, err := d.Metadata.Upsert(ctx, args.Scope, &model.Metadata{ID: args.ID, Name: args.Name, Content: args.Content})
	if err != nil {
		return nil, err
	}
	return &EntityResult{Entity: m}, nil
}

// UpsertFileArgs carries the fields accepted by the file tool.
type UpsertFileArgs struct {
	Scope    model.Scope
	ID       string
	Name     string
	Path     string
	Language string
}

// UpsertFile MERGEs a File node.
func UpsertFile(ctx context.Context, d *Deps, args UpsertFileArgs) (*EntityResult, error) {
	if err := validate.RequireScope(args.Scope); err != nil {
		return nil, err
	}
	if err := validate.ID(args.ID, model.PrefixFile, "file"); err != nil {
		return nil, err
	}
	if err := validate.NonEmpty("path", args.Path); err != nil {
		return nil, err
	}
	if _, err := d.Repository.Ensure(ctx, args.Scope.Repository, args.Scope.Branch); err != nil {
		return nil, err
	}
	f, err := d.File.Upsert(ctx, args.Scope, &model.File{
		ID: args.ID, Name: args.Name, Path: args.Path, Language: args.Language,
	})
	if err != nil {
		return nil, err
	}
	return &EntityResult{Entity: f}, nil
}

// UpsertContextArgs carries the fields accepted by the context tool.
type UpsertContextArgs struct {
	Scope       model.Scope
	ID          string
	Agent       string
	Summary     string
	Observation string
	Date        time.Time
	Issue       string
}

// UpsertContext MERGEs a Context node.
func UpsertContext(ctx context.Context, d *Deps, args UpsertContextArgs) (*EntityResult, error) {
	if err := validate.RequireScope(args.Scope); err != nil {
		return nil, err
	}
	if err := validate.ID(args.ID, model.PrefixContext, "context"); err != nil {
		return nil, err
	}
	if _, err := d.Repository.Ensure(ctx, args.Scope.Repository, args.Scope.Branch); err != nil {
		return nil, err
	}
	date := args.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	c, err := d.Context.Upsert(ctx, args.Scope, &model.Context{
		ID: args.ID, Agent: args.Agent, Summary: args.Summary, Observation: args.Observation, Date: date, Issue: args.Issue,
	})
	if err != nil {
		return nil, err
	}
	return &EntityResult{Entity: c}, nil
}

// UpsertTagArgs carries the fields accepted by the tag tool.
type UpsertTagArgs struct {
	ID          string
	Name        string
	Color       string
	Description string
}

// UpsertTag MERGEs a global Tag node.
func UpsertTag(ctx context.Context, d *Deps, args UpsertTagArgs) (*EntityResult, error) {
	if err := validate.ID(args.ID, model.PrefixTag, "tag"); err != nil {
		return nil, err
	}
	if err := validate.NonEmpty("name", args.Name); err != nil {
		return nil, err
	}
	t, err := d.Tag.Ensure(ctx, &model.Tag{ID: args.ID, Name: args.Name, Color: args.Color, Description: args.Description})
	if err != nil {
		return nil, err
	}
	return &EntityResult{Entity: t}, nil
}

// GetComponent fetches a Component by (scope, id), returning NotFound if
// absent.
func GetComponent(ctx context.Context, d *Deps, scope model.Scope, id string) (*EntityResult, error) {
	c, err := d.Component.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, memerr.Newf(memerr.NotFound, "component %q not found in %s/%s", id, scope.Repository, scope.Branch)
	}
	return &EntityResult{Entity: c}, nil
}
