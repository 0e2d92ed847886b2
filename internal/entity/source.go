package entity

// Source is a named news outlet with the seed URLs the scraper starts from.
type Source struct {
	Name    string   `json:"name" yaml:"name"`
	URLs    []string `json:"urls" yaml:"urls"`
	Enabled bool     `json:"enabled" yaml:"enabled"`
}

// Runnable reports whether the source may enter the pipeline.
func (s Source) Runnable() bool {
	return s.Enabled && len(s.URLs) > 0
}

// DefaultSources returns the built-in outlet list, all enabled.
func DefaultSources() []Source {
	defaults := []struct{ name, url string }{
		{"Bloomberg", "https://www.bloomberg.com/"},
		{"CNBC", "https://www.cnbc.com/technology/"},
		{"New York Times", "https://www.nytimes.com/"},
		{"Reuters", "https://www.reuters.com/"},
		{"BBC", "https://www.bbc.com/news"},
		{"CNN", "https://www.cnn.com/"},
		{"NBC News", "https://www.nbcnews.com/"},
		{"Fox News", "https://www.foxnews.com/"},
		{"Wall Street Journal", "https://www.wsj.com/news/business"},
		{"Washington Post", "https://www.washingtonpost.com/"},
		{"The Guardian", "https://www.theguardian.com/"},
		{"Associated Press", "https://www.apnews.com/"},
		{"NPR", "https://www.npr.org/"},
		{"Al Jazeera", "https://www.aljazeera.com/"},
		{"The Economist", "https://www.economist.com/"},
		{"Forbes", "https://www.forbes.com/"},
		{"USA Today", "https://www.usatoday.com/"},
	}

	sources := make([]Source, 0, len(defaults))
	for _, d := range defaults {
		sources = append(sources, Source{Name: d.name, URLs: []string{d.url}, Enabled: true})
	}
	return sources
}
