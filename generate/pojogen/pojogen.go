package pojogen

import (
	"fmt"
	"strings"

	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/spec"
)

var _ generate.Generator = (*Generator)(nil)

// Generator produces the request/response POJO class hierarchy.
type Generator struct{}

// New returns a POJO [generate.Generator].
func New() *Generator {
	return &Generator{}
}

func (g *Generator) Name() string {
	return "pojo"
}

// Generate emits one file per class under the caller's java/ output
// directory, laid out by cfg.Java.PackageName.
func (g *Generator) Generate(it *spec.IntermediateTree, cfg generate.GenConfig) (map[string][]byte, error) {
	files := make(map[string][]byte)

	rootClass := spec.ClassName(it.Metadata.OperationID)
	if rootClass == "" {
		return nil, newErr("pojo", "operation id is required to name the root classes")
	}

	if err := renderGroup(files, cfg, rootClass+"Request", it.Request); err != nil {
		return nil, err
	}

	if len(it.Response) > 0 {
		if err := renderGroup(files, cfg, rootClass+"Response", it.Response); err != nil {
			return nil, err
		}
	}

	return files, nil
}

func renderGroup(files map[string][]byte, cfg generate.GenConfig, className string, group spec.FieldGroup) error {
	var fields []fieldRender

	for _, n := range group {
		if n.IsTransitory {
			continue
		}

		fr, err := renderField(files, cfg, n)
		if err != nil {
			return err
		}

		fields = append(fields, fr)
	}

	path := classPath(cfg.Java.PackageName, className)
	files[path] = []byte(renderClass(cfg.Java.PackageName, className, fields, cfg.Java.UseLombok))

	return nil
}

type fieldRender struct {
	Name     string
	Type     string
	Required bool
}

func renderField(files map[string][]byte, cfg generate.GenConfig, n *spec.FieldNode) (fieldRender, error) {
	if n.EnumConstraint != "" {
		enumClass := n.ClassName
		if enumClass == "" {
			enumClass = spec.ClassName(n.NormalizedName)
		}

		path := classPath(cfg.Java.PackageName, enumClass)
		files[path] = []byte(renderEnum(cfg.Java.PackageName, enumClass, n.EnumConstraint))

		return fieldRender{Name: n.NormalizedName, Type: enumClass, Required: n.IsRequired()}, nil
	}

	if n.IsObject || n.IsArray {
		if n.ClassName == "" {
			return fieldRender{}, newErr("pojo", fmt.Sprintf("container field %q has no class name", n.NormalizedName))
		}

		if err := renderGroup(files, cfg, n.ClassName, n.Children); err != nil {
			return fieldRender{}, err
		}

		elemType := n.ClassName
		if n.IsArray {
			return fieldRender{Name: n.NormalizedName, Type: "List<" + elemType + ">", Required: n.IsRequired()}, nil
		}

		return fieldRender{Name: n.NormalizedName, Type: elemType, Required: n.IsRequired()}, nil
	}

	return fieldRender{Name: n.NormalizedName, Type: javaType(n.DataType, n.Length), Required: n.IsRequired()}, nil
}

func classPath(packageName, className string) string {
	dir := strings.ReplaceAll(packageName, ".", "/")

	return dir + "/" + className + ".java"
}

func renderClass(packageName, className string, fields []fieldRender, useLombok bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s;\n\n", packageName)

	usesList := false

	for _, f := range fields {
		if strings.HasPrefix(f.Type, "List<") {
			usesList = true
		}
	}

	if usesList {
		b.WriteString("import java.util.List;\n")
	}

	if hasBigDecimal(fields) {
		b.WriteString("import java.math.BigDecimal;\n")
	}

	usesNotNull := hasRequired(fields)
	if usesNotNull {
		b.WriteString("import javax.validation.constraints.NotNull;\n")
	}

	if usesList || hasBigDecimal(fields) || usesNotNull {
		b.WriteString("\n")
	}

	if useLombok {
		b.WriteString("import lombok.Data;\n\n@Data\n")
	}

	fmt.Fprintf(&b, "public class %s {\n", className)

	for _, f := range fields {
		if f.Required {
			b.WriteString("    @NotNull\n")
		}

		fmt.Fprintf(&b, "    private %s %s;\n", f.Type, f.Name)
	}

	if !useLombok {
		b.WriteString("\n")

		for _, f := range fields {
			writeAccessors(&b, f)
		}
	}

	b.WriteString("}\n")

	return b.String()
}

func hasBigDecimal(fields []fieldRender) bool {
	for _, f := range fields {
		if f.Type == "BigDecimal" {
			return true
		}
	}

	return false
}

func hasRequired(fields []fieldRender) bool {
	for _, f := range fields {
		if f.Required {
			return true
		}
	}

	return false
}

func writeAccessors(b *strings.Builder, f fieldRender) {
	capitalized := spec.ClassName(f.Name)

	fmt.Fprintf(b, "    public %s get%s() {\n        return %s;\n    }\n\n", f.Type, capitalized, f.Name)
	fmt.Fprintf(b, "    public void set%s(%s %s) {\n        this.%s = %s;\n    }\n\n", capitalized, f.Type, f.Name, f.Name, f.Name)
}

// renderEnum emits the enum class with its fromCode / isValid /
// getCode / getDescription helper quartet.
func renderEnum(packageName, className, literal string) string {
	values := parseEnumConstraint(literal)

	var b strings.Builder

	fmt.Fprintf(&b, "package %s;\n\n", packageName)
	fmt.Fprintf(&b, "public enum %s {\n", className)

	for i, v := range values {
		sep := ","
		if i == len(values)-1 {
			sep = ";"
		}

		fmt.Fprintf(&b, "    %s(%q, %q)%s\n", enumConstantName(v.Code, i), v.Code, v.Description, sep)
	}

	b.WriteString("\n    private final String code;\n    private final String description;\n\n")
	fmt.Fprintf(&b, "    %s(String code, String description) {\n        this.code = code;\n        this.description = description;\n    }\n\n", className)

	b.WriteString("    public String getCode() {\n        return code;\n    }\n\n")
	b.WriteString("    public String getDescription() {\n        return description;\n    }\n\n")

	fmt.Fprintf(&b, "    public static boolean isValid(String code) {\n        return fromCode(code) != null;\n    }\n\n")
	fmt.Fprintf(&b, "    public static %s fromCode(String code) {\n        for (%s v : values()) {\n            if (v.code.equals(code)) {\n                return v;\n            }\n        }\n        return null;\n    }\n", className, className)

	b.WriteString("}\n")

	return b.String()
}

func newErr(artifact, message string) *generate.GenerationError {
	return generate.NewGenerationError("pojo", artifact, message, nil)
}
