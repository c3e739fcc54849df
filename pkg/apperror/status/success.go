package status

type SuccessCode int

// Reserved ranges by domain:
//   1000-1999: EntryResolver
//   2000-2999: ScenarioSession

const (
	OK SuccessCode = 200
)
