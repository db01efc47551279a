package mcp

// --- get_section ---

type GetSectionArgs struct {
	ID string `json:"id" jsonschema:"Section id, e.g. 'blog' or '/' for the home page"`
}

type SectionResult struct {
	Found    bool     `json:"found"`
	ID       string   `json:"id,omitempty"`
	Path     string   `json:"path,omitempty"`
	Title    string   `json:"title,omitempty"`
	Descr    string   `json:"descr,omitempty"`
	Keywords string   `json:"keywords,omitempty"`
	Children []string `json:"children,omitempty"`
}

// --- full_path ---

type FullPathArgs struct {
	ID string `json:"id" jsonschema:"Section id to locate"`
}

type FullPathResult struct {
	Path string `json:"path" jsonschema:"Canonical path such as /portfolio/apache/, empty when the section is unknown"`
}

// --- breadcrumbs ---

type BreadcrumbsArgs struct {
	URI string `json:"uri" jsonschema:"Request URI, e.g. /blog/1.html"`
}

type Crumb struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Path  string `json:"path"`
}

type BreadcrumbsResult struct {
	Found   bool    `json:"found"`
	Trail   []Crumb `json:"trail,omitempty"`
	Current string  `json:"current,omitempty" jsonschema:"Top level section highlighted in the menu"`
}

// --- title_path ---

type TitlePathArgs struct {
	URI string `json:"uri" jsonschema:"Request URI of the page"`
}

type TitlePathResult struct {
	TitlePath string `json:"title_path"`
}

// --- find_sections ---

type FindSectionsArgs struct {
	Prefix string `json:"prefix,omitempty" jsonschema:"Id prefix to match. Empty lists every section."`
}

type FindSectionsResult struct {
	Sections []Crumb `json:"sections"`
}
