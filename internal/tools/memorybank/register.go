package memorybank

import (
	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
)

// Register constructs every tool handler against svc and adds it to
// registry, in the order a client would reasonably call them: init first,
// then entity upserts, associations, queries, analytics, introspection,
// and bulk deletes.
func Register(registry *mcp.Registry, svc *facade.Service) {
	registry.Register(NewInitMemoryBank(svc))

	registry.Register(NewComponent(svc))
	registry.Register(NewDecision(svc))
	registry.Register(NewRule(svc))
	registry.Register(NewMetadata(svc))
	registry.Register(NewFile(svc))
	registry.Register(NewContext(svc))
	registry.Register(NewTag(svc))
	registry.Register(NewGetComponent(svc))

	registry.Register(NewAssociateFileWithComponent(svc))
	registry.Register(NewTagItem(svc))
	registry.Register(NewUntagItem(svc))

	registry.Register(NewGetComponentDependencies(svc))
	registry.Register(NewGetComponentDependents(svc))
	registry.Register(NewGetGoverningItemsForComponent(svc))
	registry.Register(NewGetItemContextualHistory(svc))
	registry.Register(NewGetRelatedItems(svc))
	registry.Register(NewShortestPath(svc))
	registry.Register(NewGetDecisionsByDateRange(svc))

	registry.Register(NewPageRank(svc))
	registry.Register(NewLouvainCommunityDetection(svc))
	registry.Register(NewKCoreDecomposition(svc))
	registry.Register(NewStronglyConnectedComponents(svc))
	registry.Register(NewWeaklyConnectedComponents(svc))

	registry.Register(NewLabels(svc))
	registry.Register(NewCount(svc))
	registry.Register(NewProperties(svc))
	registry.Register(NewIndexes(svc))

	registry.Register(NewBulkDeleteByType(svc))
	registry.Register(NewBulkDeleteByTag(svc))
	registry.Register(NewBulkDeleteByBranch(svc))
	registry.Register(NewBulkDeleteByRepository(svc))
}
