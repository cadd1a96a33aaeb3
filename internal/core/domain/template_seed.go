package domain

// BuiltinTemplates returns the bundled starter catalog: a small pool per
// domain and band so the engine can deal full decks before any operator
// has loaded custom content. Premium entries stay out of free decks at
// generation time.
func BuiltinTemplates() []*CardTemplate {
	return []*CardTemplate{
		// health
		{Title: "Drink a glass of water", ActionText: "Fill a glass and finish it before your next task.", Domain: DomainHealth, Band: BandLow, Priority: PriorityMedium, Duration: DurationQuick, Tags: []string{"hydration"}},
		{Title: "Two-minute stretch", ActionText: "Stand up and stretch your neck, shoulders and back.", Domain: DomainHealth, Band: BandLow, Priority: PriorityLow, Duration: DurationQuick, Tags: []string{"mobility"}},
		{Title: "Take a 10-minute walk", ActionText: "Step outside and walk at a comfortable pace for ten minutes.", Domain: DomainHealth, Band: BandMid, Priority: PriorityMedium, Duration: DurationMedium, Tags: []string{"movement"}},
		{Title: "Prep a healthy snack", ActionText: "Swap one processed snack today for fruit or nuts.", Domain: DomainHealth, Band: BandMid, Priority: PriorityLow, Duration: DurationShort, Tags: []string{"nutrition"}},
		{Title: "Full workout session", ActionText: "Complete a 15-minute bodyweight circuit: squats, push-ups, planks.", Domain: DomainHealth, Band: BandHigh, Priority: PriorityHigh, Duration: DurationExtended, Tags: []string{"strength"}},
		{Title: "Plan tomorrow's meals", ActionText: "Write down all three meals for tomorrow, with portions.", Domain: DomainHealth, Band: BandHigh, Priority: PriorityMedium, Duration: DurationMedium, IsPremium: true, Tags: []string{"nutrition", "planning"}},

		// finance
		{Title: "Check your balance", ActionText: "Open your banking app and note your current balance.", Domain: DomainFinance, Band: BandLow, Priority: PriorityMedium, Duration: DurationQuick, Tags: []string{"awareness"}},
		{Title: "Log one expense", ActionText: "Record the last thing you paid for, however small.", Domain: DomainFinance, Band: BandLow, Priority: PriorityLow, Duration: DurationQuick, Tags: []string{"tracking"}},
		{Title: "Review yesterday's spending", ActionText: "List every purchase from yesterday and flag one you could skip.", Domain: DomainFinance, Band: BandMid, Priority: PriorityMedium, Duration: DurationShort, Tags: []string{"tracking"}},
		{Title: "Cancel an unused subscription", ActionText: "Find one recurring charge you no longer use and cancel it.", Domain: DomainFinance, Band: BandMid, Priority: PriorityHigh, Duration: DurationMedium, Tags: []string{"savings"}},
		{Title: "Set a weekly budget", ActionText: "Decide a spending cap for the next seven days and write it down.", Domain: DomainFinance, Band: BandHigh, Priority: PriorityHigh, Duration: DurationMedium, Tags: []string{"budgeting"}},
		{Title: "Review investment allocation", ActionText: "Check your portfolio split and compare it against your target.", Domain: DomainFinance, Band: BandHigh, Priority: PriorityMedium, Duration: DurationExtended, IsPremium: true, Tags: []string{"investing"}},

		// productivity
		{Title: "Clear your desk", ActionText: "Remove everything from your workspace that you don't need right now.", Domain: DomainProductivity, Band: BandLow, Priority: PriorityLow, Duration: DurationQuick, Tags: []string{"environment"}},
		{Title: "Write down your top task", ActionText: "Pick the single most important thing to finish today.", Domain: DomainProductivity, Band: BandLow, Priority: PriorityHigh, Duration: DurationQuick, Tags: []string{"focus"}},
		{Title: "One focused pomodoro", ActionText: "Work 25 minutes on one task with notifications off.", Domain: DomainProductivity, Band: BandMid, Priority: PriorityHigh, Duration: DurationExtended, Tags: []string{"focus"}},
		{Title: "Inbox to zero", ActionText: "Archive, reply to, or schedule every email in your inbox.", Domain: DomainProductivity, Band: BandMid, Priority: PriorityMedium, Duration: DurationMedium, Tags: []string{"email"}},
		{Title: "Plan your week", ActionText: "Block out your top three priorities for each weekday.", Domain: DomainProductivity, Band: BandHigh, Priority: PriorityHigh, Duration: DurationExtended, Tags: []string{"planning"}},
		{Title: "Delegate one task", ActionText: "Identify one task someone else can own and hand it off today.", Domain: DomainProductivity, Band: BandHigh, Priority: PriorityMedium, Duration: DurationShort, IsPremium: true, Tags: []string{"leverage"}},

		// mindfulness
		{Title: "Three deep breaths", ActionText: "Pause and take three slow breaths, exhaling longer than you inhale.", Domain: DomainMindfulness, Band: BandLow, Priority: PriorityLow, Duration: DurationQuick, Tags: []string{"breathing"}},
		{Title: "Name one good thing", ActionText: "Write down one thing that went well in the last 24 hours.", Domain: DomainMindfulness, Band: BandLow, Priority: PriorityMedium, Duration: DurationQuick, Tags: []string{"gratitude"}},
		{Title: "Five-minute meditation", ActionText: "Sit quietly for five minutes and follow your breath.", Domain: DomainMindfulness, Band: BandMid, Priority: PriorityMedium, Duration: DurationShort, Tags: []string{"meditation"}},
		{Title: "Phone-free meal", ActionText: "Eat your next meal without screens, paying attention to the food.", Domain: DomainMindfulness, Band: BandMid, Priority: PriorityLow, Duration: DurationMedium, Tags: []string{"presence"}},
		{Title: "Journal for ten minutes", ActionText: "Write freely about whatever is on your mind, no editing.", Domain: DomainMindfulness, Band: BandHigh, Priority: PriorityMedium, Duration: DurationMedium, Tags: []string{"journaling"}},
		{Title: "Guided body scan", ActionText: "Do a full 15-minute body scan, moving attention from toes to head.", Domain: DomainMindfulness, Band: BandHigh, Priority: PriorityHigh, Duration: DurationExtended, IsPremium: true, Tags: []string{"meditation"}},
	}
}
