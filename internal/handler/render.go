package handler

import (
	"fmt"
	"strings"

	"github.com/Talha76/memorize-words/internal/domain"
	"github.com/Talha76/memorize-words/internal/service"
	"github.com/Talha76/memorize-words/internal/study"

	tele "gopkg.in/telebot.v3"
)

const deletePrefix = "del_"

const (
	errorText = "Something went wrong. Please try again."

	uploadText = "📚 Send me a .txt file with one word pair per line:\n\n" +
		"[correct,wrong] word = translation\n\n" +
		"The stats in brackets are optional. Words you struggle with come first."

	promptText = "🎉 You've completed all low score words!\n\n" +
		"Would you like to practice the remaining words or add new ones?"
)

// renderScreen turns a view into message text and keyboard. A nil markup means no buttons.
func renderScreen(v service.View) (string, *tele.ReplyMarkup) {
	var text string
	var markup *tele.ReplyMarkup

	switch v.Phase {
	case study.PhaseStudy:
		text, markup = renderStudy(v)
	case study.PhaseRemainingPrompt:
		text, markup = promptText, promptMarkup()
	case study.PhaseAddingWords:
		text, markup = renderAdding(v)
	default:
		text = uploadText
	}

	if v.Error != "" {
		text = "⚠️ " + v.Error + "\n\n" + text
	}
	return text, markup
}

func renderStudy(v service.View) (string, *tele.ReplyMarkup) {
	card := v.Card
	if card == nil {
		return uploadText, nil
	}

	pool := "low score words"
	if !v.StudyingLowScore {
		pool = "remaining words"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pair %d of %d · %s\n\n", v.Index+1, v.Total, pool)
	fmt.Fprintf(&b, "📝 %s\n", card.Primary)
	if card.Revealed {
		fmt.Fprintf(&b, "🔄 %s\n", card.Secondary)
	} else {
		b.WriteString("🔄 …\n")
	}
	fmt.Fprintf(&b, "\nMastery %.0f%% (%d correct, %d wrong)", card.Mastery, card.Correct, card.Wrong)

	markup := &tele.ReplyMarkup{}

	reveal := btnReveal
	if card.Revealed {
		reveal = markup.Data("🙈 Hide", btnReveal.Unique)
	}

	correct := markup.Data(answerLabel(btnCorrect.Text, card.Correct, card.Answer == domain.AnswerCorrect), btnCorrect.Unique)
	wrong := markup.Data(answerLabel(btnWrong.Text, card.Wrong, card.Answer == domain.AnswerWrong), btnWrong.Unique)

	rows := []tele.Row{
		markup.Row(reveal),
		markup.Row(correct, wrong),
	}

	nav := tele.Row{}
	if v.Index > 0 {
		nav = append(nav, btnPrev)
	}
	if !v.IsLastPair {
		nav = append(nav, btnNext)
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, markup.Row(btnUploadNew))
	if v.IsLastPair {
		rows = append(rows, markup.Row(btnFinish))
	}

	markup.Inline(rows...)
	return b.String(), markup
}

func answerLabel(label string, count int, selected bool) string {
	text := fmt.Sprintf("%s (%d)", label, count)
	if selected {
		text = "• " + text + " •"
	}
	return text
}

func promptMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnPracticeRemaining),
		markup.Row(btnAddWords),
	)
	return markup
}

func renderAdding(v service.View) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("✍️ Add new words, one message per pair:\n\nword = translation\n")

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if len(v.Added) > 0 {
		fmt.Fprintf(&b, "\nAdded words (%d):\n", len(v.Added))
		for i, r := range v.Added {
			line := fmt.Sprintf("%d. %s = %s", i+1, r.Primary, r.Secondary)
			b.WriteString(line + "\n")
			rows = append(rows, markup.Row(markup.Data("🗑 "+line, fmt.Sprintf("%s%d", deletePrefix, i))))
		}
	}

	rows = append(rows,
		markup.Row(btnDownload),
		markup.Row(btnNewSession),
		markup.Row(btnUploadNew),
	)
	markup.Inline(rows...)

	return b.String(), markup
}
