package srcview_test

import (
	"fmt"
	"log"
	"time"

	"go.dw1.io/srcview"
)

// ExampleNew demonstrates creating a new Resolver instance.
func ExampleNew() {
	r := srcview.New()
	_ = r // Use the variable to avoid unused error
	fmt.Println("Resolver instance created successfully")
	// Output: Resolver instance created successfully
}

// ExampleNew_withOptions demonstrates creating a Resolver with options.
func ExampleNew_withOptions() {
	r := srcview.New(
		srcview.WithTimeout(10*time.Second),
		srcview.WithProjects([]srcview.Project{
			{Name: "pkg", Target: srcview.SingleTarget("https://docs.example/pkg")},
		}),
	)
	_ = r // Use the variable to avoid unused error
	fmt.Println("Resolver instance created with options")
	// Output: Resolver instance created with options
}

// ExampleResolver_Load demonstrates resolving the published source code of a
// method. It needs a reachable documentation build, so no output is checked.
func ExampleResolver_Load() {
	inv, err := srcview.LoadInventory("/var/cache/srcview/inventory.json")
	if err != nil {
		log.Fatal(err)
	}

	r := srcview.New(
		srcview.WithInventory(inv),
		srcview.WithProjects([]srcview.Project{
			{Name: "pkg", Target: srcview.SingleTarget("https://docs.example/pkg")},
		}),
	)

	result, err := r.Load(srcview.RoleMethod, "pkg.mod.ClassName.method_name")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Text())
}
