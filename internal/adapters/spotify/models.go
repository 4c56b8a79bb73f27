package spotify

// Raw Spotify Web API payload shapes. Only the fields the mapper needs.

type artistObject struct {
	Name string `json:"name"`
}

type imageObject struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type albumObject struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Images []imageObject `json:"images"`
}

type trackObject struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	URI          string         `json:"uri"`
	Artists      []artistObject `json:"artists"`
	Album        albumObject    `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type searchResponse struct {
	Tracks struct {
		Items []trackObject `json:"items"`
	} `json:"tracks"`
}
