package main

import (
	"fmt"
	"os"

	"github.com/viant/pyinspect/inspector"
	"github.com/viant/pyinspect/pygraph"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: example <file.py | package-dir>")
		os.Exit(1)
	}

	insp := inspector.New(nil)
	target := os.Args[1]

	info, err := os.Stat(target)
	if err != nil {
		fmt.Printf("error reading %s: %v\n", target, err)
		os.Exit(1)
	}

	if info.IsDir() {
		pkg, err := insp.InspectPackage(target)
		if err != nil {
			fmt.Printf("error inspecting package %s: %v\n", target, err)
			os.Exit(1)
		}
		fmt.Printf("package %s: %d modules, %d assets\n", pkg.Name, len(pkg.Modules), len(pkg.Assets))
		for _, mod := range pkg.Modules {
			printModule(mod)
		}
		return
	}

	mod, err := insp.InspectFile(target)
	if err != nil {
		fmt.Printf("error inspecting %s: %v\n", target, err)
		os.Exit(1)
	}
	printModule(mod)
}

func printModule(mod *pygraph.Module) {
	fmt.Printf("%s (encoding=%s)\n", mod.Path, mod.Encoding)
	if mod.Docstring != nil {
		fmt.Printf("  docstring: %q\n", mod.Docstring.Text)
	}
	for _, imp := range mod.Imports {
		fmt.Printf("  import %s", imp.Name)
		if imp.As != "" {
			fmt.Printf(" as %s", imp.As)
		}
		for _, w := range imp.Whats {
			fmt.Printf(" from-what=%s", w.Name)
		}
		fmt.Println()
	}
	for _, cls := range mod.Classes {
		printClass(cls, 1)
	}
	for _, fn := range mod.Functions {
		printFunction(fn, 1)
	}
	for _, e := range mod.Errors {
		kind := "error"
		if e.Lexer {
			kind = "lexer-error"
		}
		fmt.Printf("  %s: %s\n", kind, e.Message)
	}
}

func printClass(cls *pygraph.Class, depth int) {
	indent(depth)
	fmt.Printf("class %s (level=%d)\n", cls.Name, cls.Level)
	for _, base := range cls.BaseClass {
		indent(depth + 1)
		if base.IsKeyword {
			fmt.Printf("base %s=%s\n", base.KeywordName, base.Expr)
		} else {
			fmt.Printf("base %s\n", base.Expr)
		}
	}
	for _, fn := range cls.Functions {
		printFunction(fn, depth+1)
	}
	for _, nested := range cls.Classes {
		printClass(nested, depth+1)
	}
}

func printFunction(fn *pygraph.Function, depth int) {
	indent(depth)
	prefix := "def"
	if fn.IsAsync {
		prefix = "async def"
	}
	fmt.Printf("%s %s(%d args) (level=%d)\n", prefix, fn.Name, len(fn.Arguments), fn.Level)
	for _, nested := range fn.Functions {
		printFunction(nested, depth+1)
	}
	for _, nested := range fn.Classes {
		printClass(nested, depth+1)
	}
}

func indent(depth int) {
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
}
