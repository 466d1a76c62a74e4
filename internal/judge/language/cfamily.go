package language

import "codejudge/internal/judge/model"

type cAdapter struct{}

func (cAdapter) ID() model.Language { return model.LanguageC }

func (cAdapter) Prepare(code string) (Unit, error) {
	return Unit{
		FileName:   "main.c",
		Source:     code,
		BinaryFile: "main",
		CompileTpl: "gcc -O2 -std=gnu11 -o {bin} {src} -lm",
		RunTpl:     "{bin}",
	}, nil
}

type cppAdapter struct{}

func (cppAdapter) ID() model.Language { return model.LanguageCpp }

func (cppAdapter) Prepare(code string) (Unit, error) {
	return Unit{
		FileName:   "main.cpp",
		Source:     code,
		BinaryFile: "main",
		CompileTpl: "g++ -O2 -std=gnu++17 -o {bin} {src}",
		RunTpl:     "{bin}",
	}, nil
}
