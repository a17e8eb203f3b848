package storage

import (
	"strings"

	"github.com/julianstephens/heartline/internal/constants"
)

// FlagPrefix namespaces suppression flags inside the key-value table.
const FlagPrefix = "flag:"

// SuppressionKey builds the flag key for a notice shown to a patient on a day.
func SuppressionKey(patientID string, kind constants.NoticeKind, dateKey string) string {
	return strings.Join([]string{FlagPrefix + patientID, string(kind), dateKey}, ":")
}
