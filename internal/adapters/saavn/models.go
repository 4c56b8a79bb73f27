package saavn

import "encoding/json"

// FlexImage tolerates the several shapes the catalog returns for
// images: a bare URL string, an object with a link, or a list of
// quality variants.
type FlexImage []string

func (f *FlexImage) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = []string{s}
	case '[':
		var items []struct {
			Link string `json:"link"`
			URL  string `json:"url"`
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		var urls []string
		for _, item := range items {
			if item.Link != "" {
				urls = append(urls, item.Link)
			} else if item.URL != "" {
				urls = append(urls, item.URL)
			}
		}
		*f = urls
	case '{':
		var item struct {
			Link string `json:"link"`
			URL  string `json:"url"`
		}
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		if item.Link != "" {
			*f = []string{item.Link}
		} else if item.URL != "" {
			*f = []string{item.URL}
		}
	}

	return nil
}

// Best returns the highest-quality image URL, which the catalog lists
// last.
func (f FlexImage) Best() string {
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

type songObject struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	URL   string    `json:"url"`
	Image FlexImage `json:"image"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

type searchResponse struct {
	Data []songObject `json:"data"`
}
