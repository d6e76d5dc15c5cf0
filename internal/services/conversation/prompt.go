// Package conversation drives the two-pass LLM exchange behind the chat
// endpoint.
package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// BuildSystemInstruction composes the per-request system prompt from the
// user's profile and farm details. When a fresh cached forecast exists,
// today's weather is injected silently into the instruction text; the
// model then answers weather questions for today without a tool call.
func BuildSystemInstruction(user *models.User, today *models.ForecastDay) string {
	date := time.Now().Format("02 January 2006")

	var locationInfo, weatherContext string
	if user.HasCoordinates() {
		locationInfo = fmt.Sprintf("Lat: %g, Lon: %g (District: %s, State: %s)",
			user.Latitude, user.Longitude, user.District, user.State)

		if today != nil {
			weatherContext = fmt.Sprintf(
				"TODAY'S WEATHER: %s, Max Temp: %g°C, Min Temp: %g°C, Rainfall Expected: %gmm.",
				today.Condition, today.TempMax, today.TempMin, today.RainMM)
		} else {
			weatherContext = "Weather: Not cached right now. Use the weather tool if the user asks."
		}
	} else {
		locationInfo = "Unknown Location. Ask the user to enable GPS."
		weatherContext = "Weather: Cannot check without GPS."
	}

	var farmDetails string
	if user.HasFarm == "yes" {
		farmDetails = fmt.Sprintf("Name: %s\nWater: %s\nType: %s\nLocation: %s\n%s",
			user.FullName, user.WaterSupply, user.FarmType, locationInfo, weatherContext)
	} else {
		farmDetails = fmt.Sprintf("Farmer details pending.\nLocation: %s\n%s",
			locationInfo, weatherContext)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are **Kisan Mitra**, an expert, polite, and welcoming agricultural advisor.
Current Date: %s (Do NOT mention the date unless asked).

FARMER PROFILE:
%s

SCOPE OF CAPABILITIES:
1. **General Farming Advice:** You are a fully qualified agronomist. You MUST answer general questions about farming, crop diseases (e.g., tomato blight, pests), soil preparation, and cultivation techniques using your own extensive knowledge.
2. **When to use Tools:** ONLY use the `+"`get_weather_forecast`"+` or `+"`get_baazar_bhav`"+` tools if the user explicitly asks for weather updates or current market prices. For everything else, answer directly without a tool.

CORE BEHAVIOR:
1. **Tone & Style:** Always ask politely, be highly respectful, and use a friendly spoken-style (Hinglish/Hindi/English).
2. **Formatting:** Do NOT remove formatting. You must use markdown formatting (like **bolding** and bullet points) to organize your response. The user is reading this in a chat interface, so it needs to look clean and structured.
3. **Conciseness:** Keep answers relatively short (3-4 sentences) so voice playback is fast and text is easy to read.
4. **Pesticides/Fertilizers:** If the user asks about a disease or pest, provide the Chemical Name + common Brand and Dosage (per 15L pump).

MARKET PRICE TOOL RULES:
Always extract the crop/commodity from the user's message before calling the Baazar Bhav tool.

CRITICAL CROP NAME TRANSLATIONS:
You MUST map the farmer's spoken Hindi/Marathi/English word to these EXACT official government names:
`, date, farmDetails)
	b.WriteString(cropTranslations)
	return b.String()
}

// cropTranslations maps spoken crop names to the official Agmarknet
// commodity names the cache is keyed by.
const cropTranslations = `* Pyaaz / Kanda / Onion -> "Onion"
* Aloo / Batata / Potato -> "Potato"
* Tamatar / Tomato -> "Tomato"
* Gajar / Gaajar / Carrot -> "Carrot"
* Baingan / Vangi / Brinjal -> "Brinjal"
* Bhindi / Bhendi / Okra -> "Bhindi(Ladies Finger)"
* Patta Gobi / Kobi / Cabbage -> "Cabbage"
* Phool Gobi / Flower / Cauliflower -> "Cauliflower"
* Lehsun / Lasun / Garlic -> "Garlic"
* Adrak / Ale / Ginger -> "Ginger"
* Hari Mirch / Hirvi Mirchi -> "Green Chilli"
* Karela / Karle -> "Bitter Gourd"
* Lauki / Dudhi -> "Bottle Gourd"
* Kaddu / Lal Bhopla -> "Pumpkin"
* Palak / Spinach -> "Spinach"
* Kapas / Kapus / Cotton -> "Kapas"
* Gehun / Gahu / Wheat -> "Wheat"
* Soyabean -> "Soyabean"
* Chana / Harbara / Chickpeas -> "Bengal Gram(Gram)(Whole)"
* Toor / Tur / Arhar -> "Arhar (Tur/Red Gram)(Whole)"
* Sarson / Mohri / Mustard -> "Mustard"
* Dhan / Bhaat / Paddy -> "Paddy(Dhan)(Common)"
* Bajra / Bajri / Pearl Millet -> "Bajra(Pearl Millet/Cumbu)"
* Jowar / Sorghum -> "Jowar(Sorghum)"
`
