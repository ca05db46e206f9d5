package ops

import (
	"github.com/memorybank/memorybank/internal/gateway"
	"github.com/memorybank/memorybank/internal/progress"
	"github.com/memorybank/memorybank/internal/store"
)

// Deps bundles the gateways and Store Client an operation needs, all
// non-owning references constructed fresh per request by the Service
// Façade against the Store Client it resolved for the caller's project
// root.
type Deps struct {
	Client     store.Querier
	Repository *gateway.RepositoryGateway
	Metadata   *gateway.MetadataGateway
	Context    *gateway.ContextGateway
	Component  *gateway.ComponentGateway
	Decision   *gateway.DecisionGateway
	Rule       *gateway.RuleGateway
	File       *gateway.FileGateway
	Tag        *gateway.TagGateway
	Progress   progress.Sink
}

// NewDeps constructs a full gateway set against client, ready to be handed
// to any operation in this package.
func NewDeps(client store.Querier, sink progress.Sink) *Deps {
	if sink == nil {
		sink = progress.NoopSink{}
	}
	return &Deps{
		Client:     client,
		Repository: gateway.NewRepositoryGateway(client),
		Metadata:   gateway.NewMetadataGateway(client),
		Context:    gateway.NewContextGateway(client),
		Component:  gateway.NewComponentGateway(client),
		Decision:   gateway.NewDecisionGateway(client),
		Rule:       gateway.NewRuleGateway(client),
		File:       gateway.NewFileGateway(client),
		Tag:        gateway.NewTagGateway(client),
		Progress:   sink,
	}
}
