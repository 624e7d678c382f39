// Command nash-tool runs a single tool from the command line, the way the
// agent runtime would call it. It is the local harness for developing and
// smoke-testing tools.
//
//	nash-tool -list
//	nash-tool -tool balances_tool -input '{"wallet_address":"..."}'
//	nash-tool -config tools.yaml -tool feed_tool -input '{"fid":3}'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/effective-security/xlog"
	"github.com/joho/godotenv"
	"github.com/nash-app/nash-tools/tools"
	"github.com/nash-app/nash-tools/tools/codextools"
	"github.com/nash-app/nash-tools/tools/neynartools"
	"github.com/nash-app/nash-tools/tools/raydiumtools"
	"github.com/nash-app/nash-tools/tools/sqldb"
	"github.com/nash-app/nash-tools/tools/template"
	"gopkg.in/yaml.v3"
)

var logger = xlog.NewPackageLogger("github.com/nash-app/nash-tools", "nash-tool")

// config selects which tools the harness registers. With no config file
// every tool is enabled.
type config struct {
	Tools []string `yaml:"tools"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "nash-tool:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		toolName   = flag.String("tool", "", "name of the tool to run")
		input      = flag.String("input", "{}", "JSON input for the tool")
		configPath = flag.String("config", "", "optional YAML config listing enabled tools")
		list       = flag.Bool("list", false, "list registered tools and exit")
	)
	flag.Parse()

	// Local development keeps secrets in .env; missing file is fine.
	_ = godotenv.Load()

	reg, err := buildRegistry(*configPath)
	if err != nil {
		return err
	}

	if *list {
		fmt.Println(reg.Descriptions())
		return nil
	}

	if *toolName == "" {
		return fmt.Errorf("missing -tool; use -list to see registered tools")
	}

	tool, err := reg.Get(*toolName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cb := tools.NewPackageLogger(logger)
	cb.OnToolStart(ctx, tool, *input)
	out, err := tool.Call(ctx, *input)
	if err != nil {
		cb.OnToolError(ctx, tool, *input, err)
		return err
	}
	cb.OnToolEnd(ctx, tool, *input, out)

	fmt.Println(out)
	return nil
}

func buildRegistry(configPath string) (*tools.Registry, error) {
	all := []tools.ITool{
		codextools.NewBalances(),
		codextools.NewBalancesUSD(),
		codextools.NewTopTokens(),
		codextools.NewChart(),
		neynartools.NewFeed(),
		neynartools.NewTrending(),
		raydiumtools.NewSwapBuy(),
		sqldb.NewSQL(),
		template.NewEcho(),
	}

	reg := tools.NewRegistry()
	if configPath == "" {
		return reg, reg.Register(all...)
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	byName := make(map[string]tools.ITool, len(all))
	for _, tool := range all {
		byName[tool.Name()] = tool
	}
	for _, name := range cfg.Tools {
		tool, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool in config: %s", name)
		}
		if err := reg.Register(tool); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
