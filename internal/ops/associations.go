package ops

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
)

// AssociateFileWithComponent MATCHes a Component and a File in the same
// scope and MERGEs a CONTAINS_FILE edge between them. Returns
// {success:false} rather than an error when either endpoint is missing.
func AssociateFileWithComponent(ctx context.Context, d *Deps, scope model.Scope, componentID, fileID string) (*AssociationResult, error) {
	component, err := d.Component.FindByID(ctx, scope, componentID)
	if err != nil {
		return nil, err
	}
	file, err := d.File.FindByID(ctx, scope, fileID)
	if err != nil {
		return nil, err
	}
	if component == nil || file == nil {
		return &AssociationResult{Success: false, Message: missingEndpointsMessage(component == nil, file == nil, componentID, fileID)}, nil
	}

	if err := d.File.AssociateWithComponent(ctx, component.GraphUniqueID, file.GraphUniqueID); err != nil {
		if memerr.Is(err, memerr.NotFound) {
			return &AssociationResult{Success: false, Message: err.Error()}, nil
		}
		return nil, err
	}
	return &AssociationResult{Success: true, Message: "component now contains file"}, nil
}

func missingEndpointsMessage(componentMissing, fileMissing bool, componentID, fileID string) string {
	switch {
	case componentMissing && fileMissing:
		return "component " + componentID + " and file " + fileID + " not found"
	case componentMissing:
		return "component " + componentID + " not found"
	default:
		return "file " + fileID + " not found"
	}
}

// TagItem MATCHes the entity with the given graph_unique_id and the Tag
// with the given id, then MERGEs an IS_TAGGED_WITH edge between them.
// Returns {success:false} when either endpoint does not exist, since tag_item
// requires the tag to have been created via the tag upsert operation first.
func TagItem(ctx context.Context, d *Deps, entityGID, tagID string) (*AssociationResult, error) {
	if err := d.Tag.AttachTo(ctx, entityGID, tagID); err != nil {
		if memerr.Is(err, memerr.NotFound) {
			return &AssociationResult{Success: false, Message: err.Error()}, nil
		}
		return nil, err
	}
	return &AssociationResult{Success: true, Message: "tagged"}, nil
}

// UntagItem removes the IS_TAGGED_WITH edge between an entity and a tag id,
// leaving the Tag node itself intact.
func UntagItem(ctx context.Context, d *Deps, entityGID, tagID string) (*AssociationResult, error) {
	found, err := d.Tag.DetachFrom(ctx, entityGID, tagID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &AssociationResult{Success: false, Message: "no such tag association"}, nil
	}
	return &AssociationResult{Success: true, Message: "untagged"}, nil
}
