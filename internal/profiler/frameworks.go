package profiler

// frameworkPattern describes how one framework is recognized: by
// manifest dependency names and/or by configuration-file naming
// conventions.
type frameworkPattern struct {
	Name         string
	Category     string // web, mobile, desktop, backend
	Dependencies []string
	Files        []string
}

// frameworkTable is the static framework-pattern table. Detection is
// purely syntactic: a dependency name or file name match is enough.
var frameworkTable = []frameworkPattern{
	// Web
	{Name: "nextjs", Category: "web", Dependencies: []string{"next"}, Files: []string{"next.config.js", "next.config.mjs", "next.config.ts"}},
	{Name: "react", Category: "web", Dependencies: []string{"react", "react-dom"}},
	{Name: "vue", Category: "web", Dependencies: []string{"vue"}, Files: []string{"vue.config.js"}},
	{Name: "nuxt", Category: "web", Dependencies: []string{"nuxt"}, Files: []string{"nuxt.config.ts", "nuxt.config.js"}},
	{Name: "angular", Category: "web", Dependencies: []string{"@angular/core"}, Files: []string{"angular.json"}},
	{Name: "svelte", Category: "web", Dependencies: []string{"svelte"}, Files: []string{"svelte.config.js"}},
	{Name: "astro", Category: "web", Dependencies: []string{"astro"}, Files: []string{"astro.config.mjs"}},

	// Backend
	{Name: "express", Category: "backend", Dependencies: []string{"express"}},
	{Name: "fastify", Category: "backend", Dependencies: []string{"fastify"}},
	{Name: "nestjs", Category: "backend", Dependencies: []string{"@nestjs/core"}},
	{Name: "django", Category: "backend", Dependencies: []string{"django"}, Files: []string{"manage.py"}},
	{Name: "flask", Category: "backend", Dependencies: []string{"flask"}},
	{Name: "fastapi", Category: "backend", Dependencies: []string{"fastapi"}},
	{Name: "rails", Category: "backend", Dependencies: []string{"rails"}},
	{Name: "sinatra", Category: "backend", Dependencies: []string{"sinatra"}},
	{Name: "laravel", Category: "backend", Dependencies: []string{"laravel/framework"}, Files: []string{"artisan"}},
	{Name: "symfony", Category: "backend", Dependencies: []string{"symfony/framework-bundle"}},
	{Name: "gin", Category: "backend", Dependencies: []string{"github.com/gin-gonic/gin"}},
	{Name: "echo", Category: "backend", Dependencies: []string{"github.com/labstack/echo/v4"}},
	{Name: "chi", Category: "backend", Dependencies: []string{"github.com/go-chi/chi/v5"}},
	{Name: "actix", Category: "backend", Dependencies: []string{"actix-web"}},
	{Name: "axum", Category: "backend", Dependencies: []string{"axum"}},

	// Mobile
	{Name: "react-native", Category: "mobile", Dependencies: []string{"react-native"}, Files: []string{"metro.config.js"}},
	{Name: "flutter", Category: "mobile", Files: []string{"pubspec.yaml"}},
	{Name: "ionic", Category: "mobile", Dependencies: []string{"@ionic/core", "@ionic/angular"}},

	// Desktop
	{Name: "electron", Category: "desktop", Dependencies: []string{"electron"}},
	{Name: "tauri", Category: "desktop", Dependencies: []string{"@tauri-apps/api", "tauri"}, Files: []string{"tauri.conf.json"}},
	{Name: "wails", Category: "desktop", Dependencies: []string{"github.com/wailsapp/wails/v2"}, Files: []string{"wails.json"}},
}

// frameworksByFile returns framework matches for a file name.
func frameworksByFile(fileName string) []frameworkPattern {
	var out []frameworkPattern
	for _, fw := range frameworkTable {
		for _, name := range fw.Files {
			if name == fileName {
				out = append(out, fw)
				break
			}
		}
	}
	return out
}

// frameworksByDependency returns framework matches for a dependency name.
func frameworksByDependency(depName string) []frameworkPattern {
	var out []frameworkPattern
	for _, fw := range frameworkTable {
		for _, name := range fw.Dependencies {
			if name == depName {
				out = append(out, fw)
				break
			}
		}
	}
	return out
}
