// Command membankctl is an administrative CLI for the memory bank graph,
// for operators and scripts that want to seed or inspect a project's graph
// without going through an MCP client.
//
// It talks to the same Store Client and Repository Gateways the daemon
// uses, bypassing the MCP transport and session machinery entirely: every
// invocation opens (or lazily creates) the target project's database,
// performs one operation, and exits.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/memorybank/memorybank/internal/config"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/ops"
	"github.com/memorybank/memorybank/internal/store"
)

var (
	configPath  string
	projectRoot string
	repository  string
	branch      string
)

var rootCmd = &cobra.Command{
	Use:   "membankctl",
	Short: "Administer a memory bank project graph",
	Long: `membankctl seeds and inspects a memory bank project's graph directly,
without starting the MCP daemon.

Every subcommand needs --project-root and --repository; --branch defaults
to "main".`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create (or verify) the project's database and schema",
	Long: `init opens the project's database, creating it and installing the
schema (constraints and indexes) if this is the first time this project
root has been seen. Safe to run repeatedly.`,
	RunE: runInit,
}

var addContextCmd = &cobra.Command{
	Use:   "add-context",
	Short: "Record a Context entry",
	RunE:  runAddContext,
}

var addComponentCmd = &cobra.Command{
	Use:   "add-component",
	Short: "Upsert a Component",
	RunE:  runAddComponent,
}

var addDecisionCmd = &cobra.Command{
	Use:   "add-decision",
	Short: "Upsert a Decision",
	RunE:  runAddDecision,
}

var addRuleCmd = &cobra.Command{
	Use:   "add-rule",
	Short: "Upsert a Rule",
	RunE:  runAddRule,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to membank.toml (default: search order in internal/config)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "absolute path identifying the project (required)")
	rootCmd.PersistentFlags().StringVar(&repository, "repository", "", "repository name (required)")
	rootCmd.PersistentFlags().StringVar(&branch, "branch", "main", "branch name")
	rootCmd.MarkPersistentFlagRequired("project-root")
	rootCmd.MarkPersistentFlagRequired("repository")

	addContextCmd.Flags().String("id", "", "context id (auto-generated if omitted)")
	addContextCmd.Flags().String("agent", "", "agent name recording this entry")
	addContextCmd.Flags().String("summary", "", "one-line summary (required)")
	addContextCmd.Flags().String("observation", "", "freeform observation text")
	addContextCmd.Flags().String("issue", "", "related issue/ticket id")
	addContextCmd.MarkFlagRequired("summary")

	addComponentCmd.Flags().String("id", "", "component id, e.g. comp-auth (required)")
	addComponentCmd.Flags().String("name", "", "display name (required)")
	addComponentCmd.Flags().String("kind", "", "component kind, e.g. service, library")
	addComponentCmd.Flags().String("status", model.ComponentActive, "status: active, deprecated, planned")
	addComponentCmd.Flags().StringSlice("depends-on", nil, "component ids this one depends on")
	addComponentCmd.MarkFlagRequired("id")
	addComponentCmd.MarkFlagRequired("name")

	addDecisionCmd.Flags().String("id", "", "decision id (required)")
	addDecisionCmd.Flags().String("name", "", "decision title (required)")
	addDecisionCmd.Flags().String("context", "", "the reasoning behind the decision")
	addDecisionCmd.Flags().String("status", model.DecisionProposed, "status: proposed, approved, implemented, failed")
	addDecisionCmd.Flags().String("component-id", "", "component this decision governs, if any")
	addDecisionCmd.MarkFlagRequired("id")
	addDecisionCmd.MarkFlagRequired("name")

	addRuleCmd.Flags().String("id", "", "rule id (required)")
	addRuleCmd.Flags().String("name", "", "rule title (required)")
	addRuleCmd.Flags().String("content", "", "rule body (required)")
	addRuleCmd.Flags().StringSlice("triggers", nil, "trigger keywords")
	addRuleCmd.Flags().String("status", model.RuleActive, "status: active, deprecated")
	addRuleCmd.MarkFlagRequired("id")
	addRuleCmd.MarkFlagRequired("name")
	addRuleCmd.MarkFlagRequired("content")

	rootCmd.AddCommand(initCmd, addContextCmd, addComponentCmd, addDecisionCmd, addRuleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliDeps loads configuration, opens the project's client, and returns
// operation dependencies plus the (repository, branch) scope the global
// flags name. Callers must close nothing: the underlying registry keeps
// the client open for the process lifetime.
func cliDeps(ctx context.Context) (*ops.Deps, model.Scope, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, model.Scope{}, fmt.Errorf("loading config: %w", err)
	}
	registry := store.NewRegistry(store.Config{
		URI:        cfg.Store.URI,
		Username:   cfg.Store.Username,
		Password:   cfg.Store.Password,
		DBFilename: cfg.Store.DBFilename,
	})
	client, err := registry.GetClient(ctx, projectRoot)
	if err != nil {
		return nil, model.Scope{}, fmt.Errorf("opening project database: %w", err)
	}
	return ops.NewDeps(client, nil), model.Scope{Repository: repository, Branch: branch}, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, scope, err := cliDeps(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("memory bank ready for %s:%s at %s\n", scope.Repository, scope.Branch, projectRoot)
	return nil
}

func runAddContext(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	deps, scope, err := cliDeps(ctx)
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	agent, _ := cmd.Flags().GetString("agent")
	summary, _ := cmd.Flags().GetString("summary")
	observation, _ := cmd.Flags().GetString("observation")
	issue, _ := cmd.Flags().GetString("issue")

	result, err := ops.UpsertContext(ctx, deps, ops.UpsertContextArgs{
		Scope:       scope,
		ID:          id,
		Agent:       agent,
		Summary:     summary,
		Observation: observation,
		Date:        time.Now(),
		Issue:       issue,
	})
	if err != nil {
		return err
	}
	return printResult(result.Entity)
}

func runAddComponent(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	deps, scope, err := cliDeps(ctx)
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	kind, _ := cmd.Flags().GetString("kind")
	status, _ := cmd.Flags().GetString("status")
	dependsOn, _ := cmd.Flags().GetStringSlice("depends-on")

	result, err := ops.UpsertComponent(ctx, deps, ops.UpsertComponentArgs{
		Scope:     scope,
		ID:        id,
		Name:      name,
		Kind:      kind,
		Status:    status,
		DependsOn: dependsOn,
	})
	if err != nil {
		return err
	}
	return printResult(result.Entity)
}

func runAddDecision(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	deps, scope, err := cliDeps(ctx)
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	decisionContext, _ := cmd.Flags().GetString("context")
	status, _ := cmd.Flags().GetString("status")
	componentID, _ := cmd.Flags().GetString("component-id")

	result, err := ops.UpsertDecision(ctx, deps, ops.UpsertDecisionArgs{
		Scope:       scope,
		ID:          id,
		Name:        name,
		Date:        time.Now(),
		Context:     decisionContext,
		Status:      status,
		ComponentID: componentID,
	})
	if err != nil {
		return err
	}
	return printResult(result.Entity)
}

func runAddRule(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	deps, scope, err := cliDeps(ctx)
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	content, _ := cmd.Flags().GetString("content")
	triggers, _ := cmd.Flags().GetStringSlice("triggers")
	status, _ := cmd.Flags().GetString("status")

	result, err := ops.UpsertRule(ctx, deps, ops.UpsertRuleArgs{
		Scope:    scope,
		ID:       id,
		Name:     name,
		Created:  time.Now(),
		Content:  content,
		Triggers: triggers,
		Status:   status,
	})
	if err != nil {
		return err
	}
	return printResult(result.Entity)
}

func printResult(entity any) error {
	fmt.Printf("%+v\n", entity)
	return nil
}
