package service

import "github.com/enzo405/Thanks/internal/model"

// Recipients resolves the users a thank message addresses: the author of the
// replied-to message (when it resolved) plus every explicitly mentioned user,
// deduplicated, with the sender removed even if self-mentioned or
// self-replied. An empty result means the message has no one to thank.
func Recipients(m *model.Message) []int64 {
	seen := make(map[int64]struct{}, len(m.Mentions)+1)
	out := make([]int64, 0, len(m.Mentions)+1)
	add := func(id int64) {
		if id == 0 || id == m.AuthorID {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	add(m.ReplyAuthorID)
	for _, id := range m.Mentions {
		add(id)
	}
	return out
}
