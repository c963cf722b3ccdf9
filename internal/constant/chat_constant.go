package constant

import "lawpro-be/pkg/apperr"

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	DefaultSessionTitle = "New Legal Inquiry"

	TitlePrompt = `Generate a concise, professional title (3-5 words) for a legal conversation based on the user's message.`

	// ShowLawyersMarker is emitted by the model when it wants the lawyer
	// panel shown. It is stripped before the reply is stored.
	ShowLawyersMarker = "[SHOW_LAWYERS]"

	AssistantSystemPrompt = `You are LawPro, a friendly legal information assistant for people in the United States.

Explain the user's situation in plain language, outline the usual next steps and the deadlines that commonly apply, and mention when the rules vary by state.
You do not give legal advice and you do not form an attorney-client relationship; say so briefly when the user asks what they should do.
Ask for the user's county and state when the answer depends on location and they have not given it.
When the user would benefit from speaking with a lawyer and you know where they are, end your reply with the token ` + ShowLawyersMarker + ` on its own line.
Keep answers under 250 words. Use short paragraphs and "-" bullets.`

	// WelcomeMessage opens every new session.
	WelcomeMessage = "Hello! I'm your legal assistant. Tell me what happened and where you are (county and state), and I can explain your options and connect you with local attorneys."

	// FallbackReply is shown when the assistant backend answers with
	// something that cannot be used.
	FallbackReply = "I'm sorry, I couldn't process that request right now. Could you rephrase your question or try again in a moment? If this is urgent, please contact a local attorney directly."

	LawyersFoundTemplate      = "Here are attorneys who practice in %s:"
	LawyersFoundCaseTemplate  = "Here are attorneys who handle %s in %s:"
	LawyersStateFallback      = "I couldn't find attorneys in %s, so here are attorneys elsewhere in %s:"
	NoLawyersFoundTemplate    = "I couldn't find any attorneys for %s in our directory yet. Try a nearby county or just your state."
	NoLocationSuppliedMessage = "Tell me your county and state and I'll look for attorneys near you."

	LawyerRating          = 4.7
	LawyerProfileImageUrl = "/placeholder-attorney.jpg"
	LawyerAvailability    = "Available Now"
	LawyerDescriptionTmpl = "At %s, we pride ourselves on serving our clients with the utmost care and attention to detail. We understand that legal matters can have significant impacts on your life, and we're committed to providing the guidance and representation you need."
)

var failureMessages = map[apperr.Kind]string{
	apperr.KindNetwork:           "I'm having trouble connecting right now. Please check your connection and try again in a moment.",
	apperr.KindMalformedResponse: FallbackReply,
	apperr.KindPersistence:       "I couldn't save our conversation just now. Please try sending your message again.",
	apperr.KindNoLawyersFound:    "I couldn't find any attorneys for that location in our directory yet.",
	apperr.KindNoLocationFound:   NoLocationSuppliedMessage,
}

// FailureMessageFor returns the apology shown for a failed turn.
func FailureMessageFor(kind apperr.Kind) string {
	if msg, ok := failureMessages[kind]; ok {
		return msg
	}
	return "Something went wrong on our side. Please try again."
}
