package reminder

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/logger"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog renders notification text from the embedded message files.
type Catalog struct {
	localizer *i18n.Localizer
}

// NewCatalog loads the built-in English catalog.
func NewCatalog() (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	if _, err := bundle.LoadMessageFileFS(localeFS, "locales/active.en.json"); err != nil {
		return nil, fmt.Errorf("failed to load message catalog: %w", err)
	}
	return &Catalog{localizer: i18n.NewLocalizer(bundle, language.English.String())}, nil
}

// Band picks the message id for a streak length: exactly 3 days, exactly 7,
// any multiple of 10, otherwise the general message.
func Band(kind constants.NoticeKind, streak int) string {
	warning := kind == constants.NoticeWarning
	switch {
	case streak == 3 && warning:
		return constants.MsgWarningThree
	case streak == 3:
		return constants.MsgAchievementThree
	case streak == 7 && warning:
		return constants.MsgWarningSeven
	case streak == 7:
		return constants.MsgAchievementSeven
	case streak > 0 && streak%10 == 0 && warning:
		return constants.MsgWarningTens
	case streak > 0 && streak%10 == 0:
		return constants.MsgAchievementTens
	case warning:
		return constants.MsgWarningGeneral
	default:
		return constants.MsgAchievementGeneral
	}
}

// Title returns the notification title for kind.
func (c *Catalog) Title(kind constants.NoticeKind) string {
	id := constants.MsgTitleAchievement
	if kind == constants.NoticeWarning {
		id = constants.MsgTitleWarning
	}
	return c.localize(&i18n.LocalizeConfig{MessageID: id})
}

// Body returns the banded message for a streak of the given length.
func (c *Catalog) Body(kind constants.NoticeKind, streak int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    Band(kind, streak),
		TemplateData: map[string]int{"Count": streak},
		PluralCount:  streak,
	})
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig) string {
	msg, err := c.localizer.Localize(cfg)
	if err != nil {
		logger.Debug("Missing catalog message", "id", cfg.MessageID, "error", err)
		return cfg.MessageID
	}
	return msg
}
