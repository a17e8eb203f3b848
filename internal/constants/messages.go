package constants

// Notification message IDs in the reminder locale catalog
const (
	MsgAchievementThree   = "achievement_three"
	MsgAchievementSeven   = "achievement_seven"
	MsgAchievementTens    = "achievement_tens"
	MsgAchievementGeneral = "achievement_general"
	MsgWarningThree       = "warning_three"
	MsgWarningSeven       = "warning_seven"
	MsgWarningTens        = "warning_tens"
	MsgWarningGeneral     = "warning_general"
)

// Notification titles
const (
	MsgTitleAchievement = "title_achievement"
	MsgTitleWarning     = "title_warning"
)
