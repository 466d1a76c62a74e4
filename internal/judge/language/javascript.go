package language

import "codejudge/internal/judge/model"

// javascriptGuard hooks Module._load so that dynamically constructed
// require calls for the denied modules fail at runtime. Defense in depth
// on top of the static scan.
const javascriptGuard = `"use strict";
(function () {
    var Module = require("module");
    var blocked = {
        child_process: true, fs: true, net: true, http: true, https: true,
        dgram: true, dns: true, tls: true, cluster: true, worker_threads: true,
        vm: true, repl: true, os: true, inspector: true
    };
    var realLoad = Module._load;
    Module._load = function (request) {
        var name = String(request).replace(/^node:/, "").split("/")[0];
        if (blocked[name]) {
            throw new Error("module '" + request + "' is not allowed");
        }
        return realLoad.apply(Module, arguments);
    };
})();
`

type javascriptAdapter struct{}

func (javascriptAdapter) ID() model.Language { return model.LanguageJavaScript }

func (javascriptAdapter) Prepare(code string) (Unit, error) {
	return Unit{
		FileName: "main.js",
		Source:   javascriptGuard + "\n" + code,
		RunTpl:   "node {src}",
	}, nil
}
