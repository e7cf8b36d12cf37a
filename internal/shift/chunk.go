package shift

import "strings"

// MessageLimit — предел одного сообщения у транспорта.
const MessageLimit = 4096

// ChunkLines режет текст на куски не длиннее limit рун, не разрывая строк:
// граница куска всегда совпадает с границей записи (строки). Строка длиннее
// limit режется жёстко — иначе её не доставить вовсе.
func ChunkLines(text string, limit int) []string {
	if limit <= 0 {
		limit = MessageLimit
	}
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, strings.TrimRight(string(cur), "\n"))
			cur = cur[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)

		// Сверхдлинная запись: режем по limit.
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}

		// +1 на перевод строки между записями.
		if len(cur) > 0 && len(cur)+1+len(runes) > limit {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, '\n')
		}
		cur = append(cur, runes...)
	}
	flush()

	return chunks
}
