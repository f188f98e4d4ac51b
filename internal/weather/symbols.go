package weather

// SymbolInfo describes an SMHI Wsymb2 weather symbol for presentation.
type SymbolInfo struct {
	Code        int       `json:"code"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
	Icon        string    `json:"icon"`
}

// DescribeSymbol maps a Wsymb2 code (1..21) to its description, condition and icon.
// Codes outside the domain map to an unknown, cloudy-looking symbol.
func DescribeSymbol(code int) SymbolInfo {
	return SymbolInfo{
		Code:        code,
		Description: symbolDescription(code),
		Condition:   symbolCondition(code),
		Icon:        symbolIcon(code),
	}
}

func symbolDescription(code int) string {
	switch code {
	case 1:
		return "Clear sky"
	case 2:
		return "Nearly clear sky"
	case 3:
		return "Half clear sky"
	case 4:
		return "Cloudy sky"
	case 5, 6:
		return "Overcast"
	case 7:
		return "Fog"
	case 8:
		return "Light rain"
	case 9:
		return "Rain"
	case 10:
		return "Heavy rain"
	case 11:
		return "Thunder"
	case 12, 13, 14:
		return "Thunderstorm"
	case 15, 16:
		return "Snow"
	case 17, 18:
		return "Snowfall"
	case 19, 20, 21:
		return "Sleet"
	default:
		return "Unknown"
	}
}

func symbolCondition(code int) Condition {
	switch {
	case code >= 1 && code <= 2:
		return ConditionClear
	case code >= 3 && code <= 6:
		return ConditionCloudy
	case code == 7:
		return ConditionFog
	case code >= 8 && code <= 10:
		return ConditionRain
	case code >= 11 && code <= 14:
		return ConditionStorm
	case code >= 15 && code <= 18:
		return ConditionSnow
	case code >= 19 && code <= 21:
		return ConditionSleet
	default:
		return ConditionUnknown
	}
}

func symbolIcon(code int) string {
	switch code {
	case 1, 2:
		return "sunny"
	case 3, 4:
		return "partly-cloudy"
	case 5, 6:
		return "cloud"
	case 7:
		return "fog"
	case 8, 9, 10, 19, 20, 21:
		return "grain"
	case 11, 12, 13, 14:
		return "thunderstorm"
	case 15, 16, 17, 18:
		return "snowflake"
	default:
		return "partly-cloudy"
	}
}
