package types

import "strings"

// bulletMarker is stripped from the start of a description line for display.
const bulletMarker = "- "

// Bullets splits an experience description into display bullets.
// Blank lines are dropped and one leading "- " marker is removed from each line.
func Bullets(description string) []string {
	bullets := []string{}
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		bullets = append(bullets, strings.TrimPrefix(line, bulletMarker))
	}
	return bullets
}

// SkillList splits the comma-separated skills string into trimmed tokens, in order.
func SkillList(skills string) []string {
	list := []string{}
	for _, skill := range strings.Split(skills, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			list = append(list, skill)
		}
	}
	return list
}
