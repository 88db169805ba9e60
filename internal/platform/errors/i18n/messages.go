package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
const (
	CodeUnknown               = "UNKNOWN"
	CodeExpressionEmpty       = "EXPRESSION_EMPTY"
	CodeExpressionLexError    = "EXPRESSION_LEX_ERROR"
	CodeExpressionSyntaxError = "EXPRESSION_SYNTAX_ERROR"
	CodeExpressionEvaluation  = "EXPRESSION_EVALUATION_ERROR"
	CodeExpressionUnsupported = "EXPRESSION_UNSUPPORTED"
	CodeExpressionTooLarge    = "EXPRESSION_TOO_LARGE"
	CodeStatisticKindInvalid  = "STATISTIC_KIND_INVALID"
	CodeSeedInvalid           = "SEED_INVALID"
	CodeDiceMissing           = "DICE_MISSING"
	CodeDiceInvalidSpec       = "DICE_INVALID_SPEC"
	CodeNotFound              = "NOT_FOUND"
)

var enUS = map[Code]string{
	CodeUnknown:               "Something went wrong while computing the statistics.",
	CodeExpressionEmpty:       "Enter a dice expression such as 2d6+3.",
	CodeExpressionLexError:    "Unexpected character {{.Character}} at position {{.Position}}.",
	CodeExpressionSyntaxError: "The expression is malformed at position {{.Position}}: {{.Detail}}.",
	CodeExpressionEvaluation:  "The expression cannot be evaluated at position {{.Position}}: {{.Detail}}.",
	CodeExpressionUnsupported: "The expression at position {{.Position}} has no defined statistics: {{.Detail}}.",
	CodeExpressionTooLarge:    "The expression is too large to compute a full distribution.",
	CodeStatisticKindInvalid:  "Unknown statistic {{.Kind}}.",
	CodeSeedInvalid:           "The seed {{.Seed}} is not a valid integer.",
	CodeDiceMissing:           "At least one die is required.",
	CodeDiceInvalidSpec:       "Dice need at least one throw and one side.",
	CodeNotFound:              "The requested {{.Resource}} was not found.",
}

var de = map[Code]string{
	CodeUnknown:               "Beim Berechnen der Statistik ist ein Fehler aufgetreten.",
	CodeExpressionEmpty:       "Bitte einen Würfelausdruck wie 2d6+3 eingeben.",
	CodeExpressionLexError:    "Unerwartetes Zeichen {{.Character}} an Position {{.Position}}.",
	CodeExpressionSyntaxError: "Der Ausdruck ist an Position {{.Position}} fehlerhaft: {{.Detail}}.",
	CodeExpressionEvaluation:  "Der Ausdruck kann an Position {{.Position}} nicht ausgewertet werden: {{.Detail}}.",
	CodeExpressionUnsupported: "Für den Ausdruck an Position {{.Position}} ist keine Statistik definiert: {{.Detail}}.",
	CodeExpressionTooLarge:    "Der Ausdruck ist zu groß für eine vollständige Verteilung.",
	CodeStatisticKindInvalid:  "Unbekannte Statistik {{.Kind}}.",
	CodeSeedInvalid:           "Der Startwert {{.Seed}} ist keine gültige Ganzzahl.",
	CodeDiceMissing:           "Mindestens ein Würfel ist erforderlich.",
	CodeDiceInvalidSpec:       "Würfel brauchen mindestens einen Wurf und eine Seite.",
	CodeNotFound:              "Der angeforderte Eintrag ({{.Resource}}) wurde nicht gefunden.",
}
