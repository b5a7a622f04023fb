package game

import "math/rand"

// 配置没给词库时的兜底词表
var defaultWords = []string{
	"pizza", "gelato", "cinema", "spiaggia", "montagna",
	"chitarra", "biblioteca", "aeroporto", "ospedale", "carnevale",
}

// WordBank 是不可变的候选词库，每局随机抽取一个词
type WordBank struct {
	words []string
}

func NewWordBank(words []string) *WordBank {
	if len(words) == 0 {
		words = defaultWords
	}

	return &WordBank{
		words: append([]string(nil), words...),
	}
}

// Pick 均匀随机抽取一个候选词
func (wb *WordBank) Pick() string {
	return wb.words[rand.Intn(len(wb.words))]
}

func (wb *WordBank) Size() int {
	return len(wb.words)
}
