package mood

import "math/rand"

// ComfortMessages 历史页底部随机展示的安慰话语
var ComfortMessages = []string{
	"You are doing the best you can, and that's enough. 💗",
	"It’s okay to rest. You deserve peace. 🌸",
	"You made it through today, and that's something to be proud of.",
	"Emotions come and go. You are allowed to feel everything.",
	"Be gentle with yourself. You're trying, and that matters. 💕",
	"You are worthy of love, care, and patience.",
	"Even small steps count. You're moving forward. ✨",
	"Your feelings are valid. They deserve space and understanding.",
}

// RandomComfortMessage 随机返回一条安慰话语
func RandomComfortMessage(rng *rand.Rand) string {
	return ComfortMessages[rng.Intn(len(ComfortMessages))]
}
