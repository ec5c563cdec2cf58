package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// ParsedTruant represents a truant parsed from quick-add syntax
type ParsedTruant struct {
	Title    string
	Category string
	Priority string
	Status   string
	Link     string
	Errors   []string
}

var (
	linkRegex     = regexp.MustCompile(`https?://\S+`)
	categoryRegex = regexp.MustCompile(`@(?:"([^"]+)"|([\p{L}\p{N}_-]+))`)
	priorityRegex = regexp.MustCompile(`(?:^|\s)\+([a-zA-Z0-9-]+)`)
	statusRegex   = regexp.MustCompile(`(?:^|\s)~([a-zA-Z-]+)`)
)

// ParseTruant extracts metadata from a truant title
// Syntax: "Title @category +priority ~status https://link"
// Multi-word categories are quoted: @"Side projects"
func ParseTruant(input string) ParsedTruant {
	result := ParsedTruant{Errors: []string{}}

	if link := linkRegex.FindString(input); link != "" {
		normalized, err := NormalizeLink(link)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Link = normalized
		}
		input = linkRegex.ReplaceAllString(input, "")
	}

	if matches := categoryRegex.FindStringSubmatch(input); matches != nil {
		result.Category = matches[1] + matches[2]
		input = categoryRegex.ReplaceAllString(input, "")
	}

	if matches := priorityRegex.FindStringSubmatch(input); matches != nil {
		if priority, ok := NormalizePriority(matches[1]); ok {
			result.Priority = priority
		} else {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Invalid priority '%s'. Use: very-high, high, medium, low", matches[1]))
		}
		input = priorityRegex.ReplaceAllString(input, " ")
	}

	if matches := statusRegex.FindStringSubmatch(input); matches != nil {
		if status, ok := NormalizeStatus(matches[1]); ok {
			result.Status = status
		} else {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Invalid status '%s'. Use: new, in-progress, done", matches[1]))
		}
		input = statusRegex.ReplaceAllString(input, " ")
	}

	result.Title = strings.Join(strings.Fields(input), " ")
	return result
}

// NormalizePriority maps a priority or one of its shorthands to the stored
// value
func NormalizePriority(priority string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "4", "very-high", "veryhigh", "vh", "urgent":
		return "very-high", true
	case "3", "high", "hi":
		return "high", true
	case "2", "medium", "med":
		return "medium", true
	case "1", "low", "lo":
		return "low", true
	}
	return "", false
}

// NormalizeStatus maps a status or one of its shorthands to the stored value
func NormalizeStatus(status string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "new", "todo":
		return "new", true
	case "in-progress", "progress", "wip", "doing":
		return "in-progress", true
	case "done", "finished":
		return "done", true
	}
	return "", false
}
