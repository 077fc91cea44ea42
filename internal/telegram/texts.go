package telegram

// User-visible message texts. Menu screen texts live with their renderers in
// the menu package; these are the ones sent outside a menu edit.
const (
	startText = "Hello! The bot is ready to work, the current model is GPT-4o mini, " +
		"voice response is disabled, the dialogue context has been cleared, " +
		"the message counter has been reset, the system role has been removed, " +
		"the image quality is set to standard, the image size is 1024x1024"

	helpText = "🧰 <b>Bot Commands:</b>\n" +
		"/start - Start the bot and initialize data\n" +
		"/menu - Open the main menu\n" +
		"/help - Show help\n\n" +
		"⚙️ <b>Main Menu:</b>\n" +
		" - <b>Model Selection:</b> Change the AI model (4o mini, 4o, o1 mini, o1, Claude Sonnet, DALL·E 3)\n" +
		" - <b>Image Settings:</b> Adjust image quality and size\n" +
		" - <b>Context:</b> Show or clear message history\n" +
		" - <b>Audio:</b> Enable or disable audio responses\n" +
		" - <b>System Role:</b> Assign or remove the system role\n" +
		" - <b>Information:</b> Show current configuration and statistics"

	processingText = "⏳ Hold on, your request is being processed!"

	deniedTextFmt = "<i>Sorry, you do not have access to this bot.\nUser ID:</i> <b>%d</b>"

	noPermissionText = "You do not have permission to use this command."
	allEnabledText   = "Bot access has been enabled for all users."
	allDisabledText  = "Bot access has been disabled for all non-owner users. Owner access remains unaffected."

	contextEmptyText   = "Context is empty"
	contextHeaderText  = "Context:"
	contextActionsText = "Actions with context:"

	failureText      = "An error occurred while processing your request. Please try again."
	voiceFailureText = "Could not process the voice message. Please try again."

	defaultPhotoQuestion = "What's in the picture?"
)
