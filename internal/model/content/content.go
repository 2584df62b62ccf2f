package content

// Tip is a short wellness suggestion shown on the dashboard.
type Tip struct {
	Text string `json:"text"`
}

// Resource is a crisis contact.
type Resource struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Description string `json:"description,omitempty"`
}

// Notice is the disclaimer rendered under the chat view.
type Notice struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Resources []Resource `json:"resources"`
}

// Catalog groups all static content.
type Catalog struct {
	Tips         []Tip
	Resources    []Resource
	QuickReplies []string
	Notice       Notice
}

// Greeting opens every conversation.
const Greeting = "Hello! I'm your MindCare assistant. I'm here to listen and support you. How are you feeling today?"

// Seed provides the content shipped with the app.
func Seed() Catalog {
	return Catalog{
		Tips: []Tip{
			{Text: "Take 5 deep breaths when feeling overwhelmed"},
			{Text: "Practice gratitude by writing down 3 things you're thankful for"},
			{Text: "Take a 10-minute walk in nature or fresh air"},
			{Text: "Connect with a friend or loved one today"},
			{Text: "Practice mindfulness for just 5 minutes"},
		},
		Resources: []Resource{
			{Name: "Crisis Text Line", Contact: "Text HOME to 741741", Description: "24/7 crisis support via text"},
			{Name: "National Suicide Prevention Lifeline", Contact: "988", Description: "24/7 phone support"},
			{Name: "SAMHSA Helpline", Contact: "1-800-662-4357", Description: "Mental health and substance abuse"},
		},
		QuickReplies: []string{
			"I'm feeling anxious",
			"I'm having trouble sleeping",
			"I feel overwhelmed",
			"I'm feeling lonely",
			"I need motivation",
			"I'm stressed about work",
		},
		Notice: Notice{
			Title: "Important Notice",
			Body: "While I'm here to provide support and coping strategies, I'm not a replacement for professional mental health care. " +
				"If you're experiencing thoughts of self-harm or suicide, please reach out to emergency services immediately.",
			Resources: []Resource{
				{Name: "Emergency", Contact: "100"},
				{Name: "Crisis Text Line", Contact: "Text HOME to 741741"},
				{Name: "National Suicide Prevention Lifeline", Contact: "988"},
			},
		},
	}
}
