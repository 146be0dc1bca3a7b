package chat

import "strings"

// Canned assistant replies.
const (
	replyDefault  = "I'm your AgriConnect assistant. How can I help you with farming or retail needs today?"
	replyGreeting = "Hello! Welcome to AgriConnect. How can I assist you today?"
	replyHelp     = "I can help you navigate the marketplace, learn about products, manage your orders, or connect with farmers/retailers. I can also tell you about AgriConnect's mission, features, and creator."

	replyAbout = "AgriConnect is a revolutionary platform designed to connect farmers directly with retailers within a 100km radius. Our mission is to create sustainable local food systems by eliminating intermediaries, reducing food miles, and ensuring fair compensation for farmers while providing retailers with fresh, locally-sourced produce."

	replyCreator = "AgriConnect was created by Paras Agrawal, a visionary entrepreneur passionate about sustainable agriculture and technology. Paras developed AgriConnect to address the challenges faced by small-scale farmers in reaching markets and to help retailers source fresh local produce efficiently."

	replyHowItWorks = "AgriConnect works by creating a direct marketplace between farmers and retailers. Farmers list their available products with details and pricing. Retailers browse the marketplace and place orders directly. Our platform handles order management, provides weather insights for farming decisions, facilitates secure payments, and optimizes local delivery routes to ensure freshness."

	replyFeatures = "AgriConnect offers several key features: 1) Direct marketplace connecting farmers and retailers, 2) Real-time inventory management, 3) Secure ordering and payment processing, 4) Agricultural weather forecasting, 5) Order tracking and history, 6) AI-generated product videos, 7) Interactive chat support, and 8) User-specific dashboards for farmers and retailers."

	replyBenefitsFarmers = "For farmers, AgriConnect provides: direct market access, fair pricing control, reduced waste through demand forecasting, weather insights for crop management, simplified logistics, and expanded customer reach, all while maintaining the focus on local, sustainable agriculture."

	replyBenefitsRetailers = "Retailers benefit from AgriConnect through: access to fresher produce with lower food miles, direct relationships with local farmers, transparent pricing and sourcing, reduced supply chain complexity, inventory management tools, and the ability to promote locally-sourced products to consumers."

	replyMission = "AgriConnect's mission is to revolutionize agricultural supply chains by fostering direct connections between local farmers and retailers. We aim to create more sustainable, efficient, and equitable food systems that benefit producers, sellers, consumers, and the environment."

	replyTechnology = "AgriConnect leverages cutting-edge technology including a modern web platform, real-time data synchronization, geolocation services for proximity matching, AI for product recommendations and content generation, secure payment processing, and responsive design for access across all devices."

	replyMarketplace = "Our marketplace connects farmers directly with retailers. You can browse products, view details, and make purchases without intermediaries."
	replyProducts    = "AgriConnect offers a variety of fresh produce including vegetables, fruits, dairy, and specialty items from local farmers."
	replyOrders      = "You can track your orders in the dashboard. Each order shows status, delivery date, and product details."
	replyWeather     = "Our weather page provides real-time agricultural weather data to help with planting and harvesting decisions."
	replyAccount     = "You can manage your account from the dashboard, including profile information and preferences."
	replyPricing     = "Prices on AgriConnect are set directly by farmers, eliminating middlemen and ensuring fair compensation."
	replyDelivery    = "Delivery options vary by location. Most products can be delivered within 24-48 hours of ordering."
	replyPayment     = "We accept various payment methods including credit cards, bank transfers, and mobile payments."
	replyContact     = "You can contact support through the Help section or by emailing support@agriconnect.com."
)

type rule struct {
	match func(msg string) bool
	reply string
}

func anyOf(subs ...string) func(string) bool {
	return func(msg string) bool {
		for _, s := range subs {
			if strings.Contains(msg, s) {
				return true
			}
		}
		return false
	}
}

func allOf(subs ...string) func(string) bool {
	return func(msg string) bool {
		for _, s := range subs {
			if !strings.Contains(msg, s) {
				return false
			}
		}
		return true
	}
}

func either(fns ...func(string) bool) func(string) bool {
	return func(msg string) bool {
		for _, fn := range fns {
			if fn(msg) {
				return true
			}
		}
		return false
	}
}

// responseRules is an ordered precedence list: the first matching rule
// wins, so the specific compound checks sit above the generic keyword
// fallbacks. Reordering changes which reply ambiguous inputs get.
var responseRules = []rule{
	{anyOf("who created", "who made", "who is the creator", "who developed", "creator", "developer", "founder", "paras"), replyCreator},
	{either(
		anyOf("what is agriconnect", "what's agriconnect", "tell me about agriconnect", "about agriconnect"),
		allOf("what", "agriconnect"),
		allOf("tell", "about", "platform"),
	), replyAbout},
	{either(
		anyOf("how does agriconnect work", "how agriconnect works", "how does the platform work", "how does it work"),
		allOf("how", "work"),
		allOf("explain", "process"),
	), replyHowItWorks},
	{anyOf("features", "what can agriconnect do", "capabilities", "functionality"), replyFeatures},
	{anyOf("mission", "purpose", "goal", "vision", "aim"), replyMission},
	{anyOf("technology", "tech stack", "how built", "developed with"), replyTechnology},
	{either(
		allOf("farmer", "benefit"),
		allOf("how", "help", "farmer"),
	), replyBenefitsFarmers},
	{either(
		allOf("retailer", "benefit"),
		allOf("how", "help", "retailer"),
	), replyBenefitsRetailers},
	{anyOf("hello", "hi ", "hey"), replyGreeting},
	{anyOf("help", "assist"), replyHelp},
	{anyOf("marketplace", "market"), replyMarketplace},
	{anyOf("product", "produce", "item"), replyProducts},
	{anyOf("order", "purchase", "buy"), replyOrders},
	{anyOf("weather", "forecast", "climate"), replyWeather},
	{anyOf("account", "profile", "login"), replyAccount},
	{anyOf("price", "cost", "expensive"), replyPricing},
	{anyOf("deliver", "shipping", "receive"), replyDelivery},
	{anyOf("pay", "payment", "transaction"), replyPayment},
	{anyOf("contact", "support", "help"), replyContact},
}

// FindBestResponse selects the canned reply for a user message. It is pure
// and deterministic: case-insensitive substring predicates evaluated in
// fixed order, first match wins, with a generic default when nothing
// matches.
func FindBestResponse(userMessage string) string {
	msg := strings.ToLower(strings.TrimSpace(userMessage))
	for _, r := range responseRules {
		if r.match(msg) {
			return r.reply
		}
	}
	return replyDefault
}
