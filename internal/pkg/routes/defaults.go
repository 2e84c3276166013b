package routes

// DefaultDescriptors is the route table shipped with the application.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{
			Name:     "default",
			Section:  SectionFront,
			Priority: 0,
			Type:     TypeModule,
			Options: map[string]any{
				"modules":  []string{"default", "cms", "admin"},
				"defaults": defaults("default", "index", "index"),
			},
		},
		{
			Name:     "upload",
			Section:  SectionFront,
			Priority: 50,
			Type:     TypeStandard,
			Options: map[string]any{
				"route":    "upload/:module",
				"defaults": defaults("default", "upload", "receive"),
			},
		},
		{
			Name:     "static",
			Section:  SectionFront,
			Priority: 20,
			Type:     TypeStandard,
			Options: map[string]any{
				"route":        "page/:slug",
				"defaults":     defaults("cms", "page", "view"),
				"requirements": map[string]string{"slug": `[a-z0-9-]+`},
			},
		},
		{
			Name:     "api",
			Section:  SectionAPI,
			Priority: 100,
			Type:     TypePrefix,
			Options: map[string]any{
				"prefix":   "/api",
				"defaults": defaults("api", "index", "index"),
			},
		},
		{
			Name:     "admin",
			Section:  SectionAdmin,
			Priority: 10,
			Type:     TypeStandard,
			Options: map[string]any{
				"route":    "admin/:controller/:action/*",
				"defaults": defaults("admin", "index", "index"),
			},
		},
		{
			Name:     "sysuser",
			Section:  SectionAdmin,
			Priority: 5,
			Type:     TypeStandard,
			Options: map[string]any{
				"route": "sysuser/:action/:id",
				"defaults": map[string]string{
					ParamModule:     "sysuser",
					ParamController: "user",
					ParamAction:     "list",
					"id":            "",
				},
				"requirements": map[string]string{"id": `\d+`},
			},
		},
	}
}

// Default loads DefaultDescriptors.
func Default() (*Table, error) {
	return Load(DefaultDescriptors())
}

func defaults(module, controller, action string) map[string]string {
	return map[string]string{
		ParamModule:     module,
		ParamController: controller,
		ParamAction:     action,
	}
}
