package language

import (
	"regexp"

	"codejudge/internal/judge/model"
)

var (
	javaPublicClassRe = regexp.MustCompile(`public\s+(?:final\s+|abstract\s+)?class\s+(\w+)`)
	javaClassRe       = regexp.MustCompile(`class\s+(\w+)`)
)

type javaAdapter struct{}

func (javaAdapter) ID() model.Language { return model.LanguageJava }

// Prepare extracts the public class name to pick the file name, since
// javac requires file-name/class-name agreement.
func (javaAdapter) Prepare(code string) (Unit, error) {
	class := "Main"
	if m := javaPublicClassRe.FindStringSubmatch(code); m != nil {
		class = m[1]
	} else if m := javaClassRe.FindStringSubmatch(code); m != nil {
		class = m[1]
	}
	return Unit{
		FileName:   class + ".java",
		Source:     code,
		BinaryFile: class + ".class",
		CompileTpl: "javac -encoding UTF-8 {src}",
		RunTpl:     "java -XX:+UseSerialGC -Xss8m -cp {dir} " + class,
	}, nil
}
