package tallybot

import (
	"regexp"
	"strings"
)

var mentionRegexp = regexp.MustCompile(`<@([A-Z0-9]+)>`)

// CountEmojiTriggers returns the number of non-overlapping occurrences of any
// of the given emoji names (in their ":name:" token form) in the text. It is
// a pure function with no I/O
func CountEmojiTriggers(text string, emojiNames []string) (count int) {
	for _, name := range emojiNames {
		count = count + strings.Count(text, ":"+name+":")
	}

	return count
}

// MentionedUsers returns the ordered, duplicate-preserving list of user
// identifiers mentioned in the text with the "<@USERID>" syntax
func MentionedUsers(text string) (userIDs []string) {
	matches := mentionRegexp.FindAllStringSubmatch(text, -1)

	userIDs = make([]string, 0, len(matches))
	for _, m := range matches {
		userIDs = append(userIDs, m[1])
	}

	return userIDs
}
