package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"go.dw1.io/srcview"
	"go.dw1.io/srcview/internal/pager"
	"golang.org/x/term"
)

const (
	usage = `srcview-cli - view the published source code of a documented symbol

Usage:
   srcview-cli [options] <role> <symbol>
   srcview-cli [options] <role>:<symbol>

Roles:
   method, function, class, attribute - or any full directive tag
   recorded in the inventory (e.g. py:method)

Options:
   -config string     Path to the srcview YAML config (default: ./srcview.yaml)
   -inventory string  Path to the inventory dump (overrides the config)
   -project value     Extra project mapping as name=root (repeatable)
   -timeout duration  Remote page fetch timeout (default: 30s)
   -style string      Glamour style (dark, light, notty, auto) (default: auto)
   -json              Output raw JSON instead of rendered markdown
   -no-pager          Print instead of launching the interactive pager
   -help              Show this help message

Examples:
   # View a method's source
   srcview-cli method pkg.mod.ClassName.method_name

   # View a function's source with an explicit inventory
   srcview-cli -inventory ./inventory.json function pkg.mod.func

   # Add a project root on the command line
   srcview-cli -project pkg=https://docs.example/pkg function pkg.mod.func
`

	defaultConfigFile = "srcview.yaml"
)

var defaultWordWrapWidth = 80

type config struct {
	configPath string
	inventory  string
	projects   projectFlags
	timeout    time.Duration
	style      string
	jsonOutput bool
	noPager    bool
}

// projectFlags collects repeated -project name=root mappings.
type projectFlags []srcview.Project

func (p *projectFlags) String() string {
	names := make([]string, 0, len(*p))
	for _, project := range *p {
		names = append(names, project.Name)
	}

	return strings.Join(names, ",")
}

func (p *projectFlags) Set(value string) error {
	name, root, ok := strings.Cut(value, "=")
	if !ok || name == "" || root == "" {
		return fmt.Errorf("project must be name=root, got %q", value)
	}

	*p = append(*p, srcview.Project{Name: name, Target: srcview.SingleTarget(root)})

	return nil
}

func main() {
	cfg := config{}

	flag.StringVar(&cfg.configPath, "config", "", "path to the srcview YAML config")
	flag.StringVar(&cfg.inventory, "inventory", "", "path to the inventory dump")
	flag.Var(&cfg.projects, "project", "extra project mapping as name=root")
	flag.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "remote page fetch timeout")
	flag.StringVar(&cfg.style, "style", "auto", "glamour style (dark, light, notty, auto)")
	flag.BoolVar(&cfg.jsonOutput, "json", false, "output raw JSON")
	flag.BoolVar(&cfg.noPager, "no-pager", false, "print instead of paging")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	role, symbol, err := parseCLIArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg, role, symbol); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, role, symbol string) error {
	ctx := context.Background()

	projects, inventoryPath, err := loadConfiguration(cfg)
	if err != nil {
		return err
	}

	if inventoryPath == "" {
		return fmt.Errorf("no inventory configured; pass -inventory or set it in %s", defaultConfigFile)
	}

	inv, err := srcview.LoadInventory(inventoryPath)
	if err != nil {
		return err
	}

	r := srcview.New(
		srcview.WithContext(ctx),
		srcview.WithInventory(inv),
		srcview.WithProjects(projects),
		srcview.WithTimeout(cfg.timeout),
	)

	result, err := r.Load(role, symbol)
	if err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}

	if cfg.jsonOutput {
		return outputJSON(result)
	}

	return outputMarkdown(result, cfg, role, symbol)
}

// loadConfiguration merges the YAML config with command-line overrides.
func loadConfiguration(cfg config) ([]srcview.Project, string, error) {
	path := cfg.configPath
	required := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	var projects []srcview.Project
	inventoryPath := cfg.inventory

	fileCfg, err := srcview.LoadConfig(path)
	switch {
	case err == nil:
		projects = fileCfg.ProjectList()
		if inventoryPath == "" {
			inventoryPath = fileCfg.Inventory
		}
	case required || !errors.Is(err, fs.ErrNotExist):
		return nil, "", err
	}

	projects = append(projects, cfg.projects...)
	if len(projects) == 0 {
		return nil, "", fmt.Errorf("no projects configured; pass -project or set them in %s", defaultConfigFile)
	}

	return projects, inventoryPath, nil
}

func parseCLIArgs(args []string) (string, string, error) {
	var rawRole, rawSymbol string

	switch len(args) {
	case 1:
		var ok bool
		rawRole, rawSymbol, ok = splitRoleSymbol(args[0])
		if !ok {
			return "", "", fmt.Errorf("expected <role> <symbol> or <role>:<symbol>; see usage")
		}
	case 2:
		rawRole, rawSymbol = args[0], args[1]
	default:
		return "", "", fmt.Errorf("expected <role> <symbol> or <role>:<symbol>; see usage")
	}

	role := normalizeRole(rawRole)
	symbol := strings.TrimSpace(rawSymbol)

	if role == "" {
		return "", "", fmt.Errorf("role must not be empty")
	}
	if symbol == "" {
		return "", "", fmt.Errorf("symbol must not be empty")
	}

	return role, symbol, nil
}

// splitRoleSymbol splits a combined <role>:<symbol> argument. Role tags may
// themselves contain a colon (py:method), so the split happens at the last
// one; symbol names never contain colons.
func splitRoleSymbol(arg string) (string, string, bool) {
	i := strings.LastIndex(arg, ":")
	if i <= 0 || i == len(arg)-1 {
		return "", "", false
	}

	return arg[:i], arg[i+1:], true
}

// normalizeRole expands shorthand role names to their directive tags.
func normalizeRole(role string) string {
	role = strings.TrimSpace(role)

	switch role {
	case "method":
		return srcview.RoleMethod
	case "function":
		return srcview.RoleFunction
	case "class":
		return srcview.RoleClass
	case "attribute":
		return srcview.RoleAttribute
	}

	return role
}

func outputJSON(result srcview.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Println(string(data))

	return nil
}

func getWordWrapWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil && width > 0 {
		if width <= defaultWordWrapWidth {
			return width
		}

		return defaultWordWrapWidth
	}

	return 0
}

func outputMarkdown(result srcview.Result, cfg config, role, symbol string) error {
	markdown := result.Markdown()

	renderOpts := []glamour.TermRendererOption{}
	if width := getWordWrapWidth(); width > 0 {
		renderOpts = append(renderOpts, glamour.WithWordWrap(width))
	}

	switch cfg.style {
	case "auto":
		renderOpts = append(renderOpts, glamour.WithAutoStyle())
	default:
		renderOpts = append(renderOpts, glamour.WithStandardStyle(cfg.style))
	}

	r, err := glamour.NewTermRenderer(renderOpts...)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	if !cfg.noPager && term.IsTerminal(int(os.Stdout.Fd())) {
		return pager.Run(pager.Document{
			Rendered: rendered,
			Source:   result.Text(),
			Title:    fmt.Sprintf("%s %s", role, symbol),
		})
	}

	fmt.Print(rendered)

	return nil
}
