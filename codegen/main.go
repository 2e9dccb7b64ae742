package main

import (
	"fmt"
	"os"
	"strings"
)

func generateDerive(n int) string {
	var sb strings.Builder

	typeParams := []string{"T any"}
	for i := 1; i <= n; i++ {
		typeParams = append(typeParams, fmt.Sprintf("D%d any", i))
	}

	depParams := []string{}
	for i := 1; i <= n; i++ {
		depParams = append(depParams, fmt.Sprintf("d%d Source[D%d]", i, i))
	}

	combineParams := []string{}
	for i := 1; i <= n; i++ {
		combineParams = append(combineParams, fmt.Sprintf("D%d", i))
	}

	deps := []string{}
	for i := 1; i <= n; i++ {
		deps = append(deps, fmt.Sprintf("d%d", i))
	}

	currents := []string{}
	for i := 1; i <= n; i++ {
		currents = append(currents, fmt.Sprintf("d%d.current()", i))
	}

	sb.WriteString(fmt.Sprintf("func Derive%d[%s](\n", n, strings.Join(typeParams, ", ")))
	sb.WriteString("\tb *Board,\n")
	sb.WriteString("\tname string,\n")
	for _, dep := range depParams {
		sb.WriteString(fmt.Sprintf("\t%s,\n", dep))
	}
	sb.WriteString(fmt.Sprintf("\tcombine func(%s) (T, error),\n", strings.Join(combineParams, ", ")))
	sb.WriteString("\topts ...FieldOption,\n")
	sb.WriteString(") (*Derived[T], error) {\n")
	sb.WriteString("\tif combine == nil {\n")
	sb.WriteString("\t\treturn nil, newConfigError(boardName(b), name, \"nil combine function\")\n")
	sb.WriteString("\t}\n")
	sb.WriteString("\td := &Derived[T]{\n")
	sb.WriteString("\t\tcell: cell[T]{b: b, name: name, tags: make(map[any]any)},\n")
	sb.WriteString(fmt.Sprintf("\t\tdeps: []AnyField{%s},\n", strings.Join(deps, ", ")))
	sb.WriteString("\t}\n")
	sb.WriteString("\td.compute = func() (T, error) {\n")
	sb.WriteString(fmt.Sprintf("\t\treturn combine(%s)\n", strings.Join(currents, ", ")))
	sb.WriteString("\t}\n\n")
	sb.WriteString("\tfor _, opt := range opts {\n")
	sb.WriteString("\t\topt(d)\n")
	sb.WriteString("\t}\n\n")
	sb.WriteString("\treturn registerDerived(b, d)\n")
	sb.WriteString("}\n\n")

	return sb.String()
}

func main() {
	var output strings.Builder

	for i := 1; i <= 8; i++ {
		output.WriteString(generateDerive(i))
	}

	fmt.Print(output.String())

	if len(os.Args) > 1 && os.Args[1] == "-w" {
		file, err := os.OpenFile("derive_generated.go", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			panic(err)
		}
		defer file.Close()

		file.WriteString("package blackboard\n\n")
		file.WriteString("//go:generate go run ./codegen -w\n\n")
		file.WriteString(output.String())
		fmt.Println("Generated derive_generated.go")
	}
}
