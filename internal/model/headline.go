package model

import "fmt"

const (
	MaxHeadlines  = 15
	UnknownSource = "Unknown"
)

type Headline struct {
	Title  string
	Source string
}

func (h Headline) String() string {
	return fmt.Sprintf("%s (%s)", h.Title, h.Source)
}

type Digest struct {
	Subject string
	HTML    string
}
