package srcview_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.dw1.io/srcview"
)

const methodPage = `<html><body>
<div id="Cls.meth">class Cls(object):
    def meth(self):<a class="viewcode-back" href="../index.html">[docs]</a>
        return "code"</div>
</body></html>`

const functionPage = `<html><body>
<div id="func">def func():
    return 42<a class="viewcode-back" href="../index.html">[docs]</a></div>
</body></html>`

// writePage writes a generated viewcode page under root and returns root.
func writePage(t *testing.T, root, rel, contents string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
}

func TestLoadFromLocalPages(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "_modules/pkg/mod.html", methodPage)

	inv := srcview.Inventory{
		srcview.RoleMethod: {
			"pkg.mod.Cls.meth": {
				Project: "pkg",
				Version: "1.0",
				URI:     root + "/api/pkg.html#pkg.mod.Cls.meth",
				Display: "-",
			},
		},
	}

	r := srcview.New(
		srcview.WithInventory(inv),
		srcview.WithProjects([]srcview.Project{
			{Name: "pkg", Target: srcview.SingleTarget(root)},
		}),
	)

	result, err := r.Load(srcview.RoleMethod, "pkg.mod.Cls.meth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code := result.Text()
	if !strings.Contains(code, `return "code"`) {
		t.Fatalf("unexpected code: %q", code)
	}
	if strings.Contains(code, "[docs]") {
		t.Fatalf("back link leaked into code: %q", code)
	}

	src, ok := result.(srcview.Source)
	if !ok {
		t.Fatalf("expected Source, got %T", result)
	}
	if src.Anchor != "Cls.meth" {
		t.Fatalf("anchor = %q, want %q", src.Anchor, "Cls.meth")
	}
	if src.Page != root+"/_modules/pkg/mod.html" {
		t.Fatalf("page = %q", src.Page)
	}
}

func TestLoadFromRemotePages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/_modules/pkg/mod.html" {
			http.NotFound(w, req)
			return
		}

		_, _ = w.Write([]byte(functionPage))
	}))
	defer srv.Close()

	inv := srcview.Inventory{
		srcview.RoleFunction: {
			"pkg.mod.func": {
				Project: "pkg",
				URI:     srv.URL + "/api/pkg.html#pkg.mod.func",
			},
		},
	}

	r := srcview.New(
		srcview.WithInventory(inv),
		srcview.WithProjects([]srcview.Project{
			{Name: "pkg", Target: srcview.SingleTarget(srv.URL)},
		}),
	)

	result, err := r.Load(srcview.RoleFunction, "pkg.mod.func")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Text(), "return 42") {
		t.Fatalf("unexpected code: %q", result.Text())
	}
}

func TestLoadFailureModes(t *testing.T) {
	root := t.TempDir()

	newResolver := func(symbol, uri string, role string) srcview.Resolver {
		inv := srcview.Inventory{
			role: {
				symbol: {Project: "pkg", URI: uri},
			},
		}

		return srcview.New(
			srcview.WithInventory(inv),
			srcview.WithProjects([]srcview.Project{
				{Name: "pkg", Target: srcview.SingleTarget(root)},
			}),
		)
	}

	t.Run("missing local page", func(t *testing.T) {
		r := newResolver("pkg.mod.func", root+"/api/pkg.html#pkg.mod.func", srcview.RoleFunction)

		_, err := r.Load(srcview.RoleFunction, "pkg.mod.func")
		if !errors.Is(err, srcview.ErrPageNotFound) {
			t.Fatalf("expected ErrPageNotFound, got %v", err)
		}
	})

	t.Run("unreachable remote page", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // connection refused from here on

		inv := srcview.Inventory{
			srcview.RoleFunction: {
				"pkg.mod.func": {Project: "pkg", URI: srv.URL + "/api/pkg.html#pkg.mod.func"},
			},
		}
		r := srcview.New(
			srcview.WithInventory(inv),
			srcview.WithProjects([]srcview.Project{
				{Name: "pkg", Target: srcview.SingleTarget(srv.URL)},
			}),
		)

		_, err := r.Load(srcview.RoleFunction, "pkg.mod.func")
		if !errors.Is(err, srcview.ErrPageUnreachable) {
			t.Fatalf("expected ErrPageUnreachable, got %v", err)
		}
	})

	t.Run("remote error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer srv.Close()

		inv := srcview.Inventory{
			srcview.RoleFunction: {
				"pkg.mod.func": {Project: "pkg", URI: srv.URL + "/api/pkg.html#pkg.mod.func"},
			},
		}
		r := srcview.New(
			srcview.WithInventory(inv),
			srcview.WithProjects([]srcview.Project{
				{Name: "pkg", Target: srcview.SingleTarget(srv.URL)},
			}),
		)

		_, err := r.Load(srcview.RoleFunction, "pkg.mod.func")
		if !errors.Is(err, srcview.ErrPageUnreachable) {
			t.Fatalf("expected ErrPageUnreachable, got %v", err)
		}
	})

	t.Run("location outside every root", func(t *testing.T) {
		r := newResolver("pkg.mod.func", "https://elsewhere.example/api.html#pkg.mod.func", srcview.RoleFunction)

		_, err := r.Load(srcview.RoleFunction, "pkg.mod.func")
		if !errors.Is(err, srcview.ErrRootNotFound) {
			t.Fatalf("expected ErrRootNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), root) {
			t.Fatalf("expected configured roots in error, got %q", err.Error())
		}
	})

	t.Run("location without anchor separator", func(t *testing.T) {
		r := newResolver("pkg.mod.func", root+"/api/pkg.html", srcview.RoleFunction)

		_, err := r.Load(srcview.RoleFunction, "pkg.mod.func")
		if !errors.Is(err, srcview.ErrBadLocation) {
			t.Fatalf("expected ErrBadLocation, got %v", err)
		}
	})

	t.Run("method anchor too short", func(t *testing.T) {
		inv := srcview.Inventory{
			srcview.RoleMethod: {
				"pkg.meth": {Project: "pkg", URI: root + "/api/pkg.html#meth"},
			},
		}
		r := srcview.New(
			srcview.WithInventory(inv),
			srcview.WithProjects([]srcview.Project{
				{Name: "pkg", Target: srcview.SingleTarget(root)},
			}),
		)

		_, err := r.Load(srcview.RoleMethod, "pkg.meth")
		if !errors.Is(err, srcview.ErrBadLocation) {
			t.Fatalf("expected ErrBadLocation, got %v", err)
		}
	})

	t.Run("anchor missing from page", func(t *testing.T) {
		writePage(t, root, "_modules/pkg/mod.html", functionPage)
		r := newResolver("pkg.mod.missing", root+"/api/pkg.html#pkg.mod.missing", srcview.RoleFunction)

		_, err := r.Load(srcview.RoleFunction, "pkg.mod.missing")
		if !errors.Is(err, srcview.ErrAnchorNotFound) {
			t.Fatalf("expected ErrAnchorNotFound, got %v", err)
		}
	})
}

func TestSourceMarkdown(t *testing.T) {
	src := srcview.Source{
		Project: "pkg",
		Version: "2.1",
		Role:    srcview.RoleFunction,
		Symbol:  "pkg.mod.func",
		Code:    "def func():\n    return 42\n",
	}

	md := src.Markdown()
	if !strings.Contains(md, "# pkg.mod.func") {
		t.Fatalf("missing heading: %q", md)
	}
	if !strings.Contains(md, "```python\ndef func():") {
		t.Fatalf("missing fenced code: %q", md)
	}
	if !strings.Contains(md, "pkg 2.1") {
		t.Fatalf("missing origin: %q", md)
	}
}

func TestLoadInventory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.json")

	inv := srcview.Inventory{
		srcview.RoleFunction: {
			"pkg.mod.func": {Project: "pkg", Version: "1.0", URI: "https://docs.example/pkg/api.html#pkg.mod.func", Display: "-"},
		},
		srcview.RoleClass: {
			"pkg.mod.Cls": {Project: "pkg", Version: "1.0", URI: "https://docs.example/pkg/api.html#pkg.mod.Cls", Display: "-"},
		},
	}

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal inventory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write inventory: %v", err)
	}

	loaded, err := srcview.LoadInventory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := loaded[srcview.RoleFunction]["pkg.mod.func"]
	if entry.URI != "https://docs.example/pkg/api.html#pkg.mod.func" {
		t.Fatalf("entry.URI = %q", entry.URI)
	}

	roles := loaded.Roles()
	if len(roles) != 2 || roles[0] != srcview.RoleClass || roles[1] != srcview.RoleFunction {
		t.Fatalf("roles = %v", roles)
	}

	symbols := loaded.Symbols(srcview.RoleFunction)
	if len(symbols) != 1 || symbols[0] != "pkg.mod.func" {
		t.Fatalf("symbols = %v", symbols)
	}

	if _, err := srcview.LoadInventory(filepath.Join(dir, "nope.json")); err == nil {
		t.Fatal("expected error for missing inventory file")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "srcview.yaml")

	contents := `inventory: /var/cache/srcview/inventory.json
projects:
  alpha: https://docs.example/alpha
  beta:
    - https://docs.example/beta
    - objects.inv
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := srcview.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Inventory != "/var/cache/srcview/inventory.json" {
		t.Fatalf("inventory = %q", cfg.Inventory)
	}

	projects := cfg.ProjectList()
	if len(projects) != 2 {
		t.Fatalf("projects = %v", projects)
	}
	if projects[0].Name != "alpha" || projects[0].Target.Root() != "https://docs.example/alpha" {
		t.Fatalf("alpha project = %+v", projects[0])
	}
	if projects[1].Name != "beta" || projects[1].Target.Root() != "https://docs.example/beta" {
		t.Fatalf("beta project = %+v", projects[1])
	}

	t.Run("empty projects rejected", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.yaml")
		if err := os.WriteFile(empty, []byte("inventory: x\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		if _, err := srcview.LoadConfig(empty); err == nil {
			t.Fatal("expected validation error for empty projects")
		}
	})
}

func TestInvalidInputs(t *testing.T) {
	r := srcview.New(smallInventory())

	if _, err := r.Load("", "pkg.func"); !errors.Is(err, srcview.ErrEmptyRole) {
		t.Fatalf("expected ErrEmptyRole, got %v", err)
	}

	if _, err := r.Load(srcview.RoleFunction, "pkg..func"); !errors.Is(err, srcview.ErrInvalidSymbol) {
		t.Fatalf("expected ErrInvalidSymbol, got %v", err)
	}
}

// smallInventory seeds a single-entry inventory for validation tests.
func smallInventory() srcview.Option {
	return srcview.WithInventory(srcview.Inventory{
		srcview.RoleFunction: {"pkg.func": {URI: "u#func"}},
	})
}
