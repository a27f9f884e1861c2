package chatbot

// FallbackResponse is returned when no knowledge entry matches the message.
const FallbackResponse = "I'm not sure about that specific topic yet. Try asking about workouts, specific exercises (like squats), nutrition, or weight loss tips!"

// KnowledgeEntry maps a set of lowercase keywords to a canned response.
type KnowledgeEntry struct {
	Topic    string   // Short label, used for logging and the CLI only
	Keywords []string // Lowercase tokens or phrases matched as substrings
	Response string
}

// knowledgeBase is scanned in order; earlier entries win ties.
// Keep keywords lowercase, validateEntries rejects anything else at init.
var knowledgeBase = []KnowledgeEntry{
	// ============================================================================
	// GENERAL
	// ============================================================================
	{
		Topic:    "greeting",
		Keywords: []string{"hello", "hi", "hey", "greetings"},
		Response: "Hello! I'm your FitAI assistant. I can help you with workout plans, nutrition advice, or motivation. What's on your mind?",
	},

	// ============================================================================
	// NUTRITION
	// ============================================================================
	{
		Topic:    "indian",
		Keywords: []string{"indian", "desi", "roti", "dal", "rice"},
		Response: "Indian diets are great for fitness! For weight loss, focus on Dal, Sabzi, and Roti (multigrain). Avoid excessive oil and sugar. For muscle gain, increase protein with Paneer, Soya Chunks, Chicken, and Eggs alongside Rice or Roti.",
	},
	{
		Topic:    "vegetarian",
		Keywords: []string{"vegetarian", "veg", "protein veg"},
		Response: "Top vegetarian protein sources include Paneer, Soya Chunks, Tofu, Lentils (Dal), Chickpeas (Chana), Greek Yogurt, and Whey Protein. You can easily hit your protein goals with these!",
	},
	{
		Topic:    "weight_loss",
		Keywords: []string{"weight loss", "lose weight", "fat loss", "burn fat", "slimming", "cut"},
		Response: "To lose weight, you need a calorie deficit. Try our 'Indian Weight Loss' plan! Eat high-protein meals like Moong Dal and Paneer to stay full. Combine this with HIIT workouts to burn more calories.",
	},
	{
		Topic:    "muscle_gain",
		Keywords: []string{"muscle", "gain", "build", "hypertrophy", "bulk", "size"},
		Response: "Building muscle requires a calorie surplus and progressive overload. Eat protein-rich foods like Chicken, Eggs, or Soya every 3-4 hours. Focus on compound lifts like Squats and Deadlifts.",
	},
	{
		Topic:    "belly_fat",
		Keywords: []string{"belly fat", "stomach", "abs"},
		Response: "You can't spot-reduce belly fat, but a calorie deficit will reduce overall body fat. Core exercises like Planks and Russian Twists will strengthen your abs, making them visible as you lose fat.",
	},
	{
		Topic:    "diet",
		Keywords: []string{"diet", "nutrition", "food", "eat", "meal", "breakfast", "lunch", "dinner"},
		Response: "Nutrition is key! Focus on whole foods. For breakfast, try Poha with peanuts or Eggs. Lunch can be Roti/Rice with Dal and Sabzi. Dinner should be lighter, like Grilled Paneer or Chicken Salad.",
	},
	{
		Topic:    "hydration",
		Keywords: []string{"water", "hydration", "drink"},
		Response: "Stay hydrated! Aim for 3-4 liters of water daily. It helps with metabolism, muscle recovery, and energy levels. Drink a glass of water before meals to help with portion control.",
	},
	{
		Topic:    "supplements",
		Keywords: []string{"supplements", "creatine", "whey", "bcaa"},
		Response: "Supplements are helpful but not magic. Whey Protein is great for hitting protein goals. Creatine Monohydrate (3-5g/day) is excellent for strength and muscle performance. Focus on real food first!",
	},

	// ============================================================================
	// EXERCISES
	// ============================================================================
	{
		Topic:    "squat",
		Keywords: []string{"squat", "legs", "quads"},
		Response: "Squats are the king of exercises! Keep your back straight, chest up, and drive through your heels. Go deep (thighs parallel to floor) for maximum benefit.",
	},
	{
		Topic:    "bench_press",
		Keywords: []string{"bench press", "chest", "push"},
		Response: "For a big chest, focus on Bench Press. Retract your shoulder blades, arch slightly, and control the weight on the way down. Don't bounce the bar off your chest!",
	},
	{
		Topic:    "deadlift",
		Keywords: []string{"deadlift", "back", "pull"},
		Response: "Deadlifts build the whole back chain. Keep the bar close to your legs, keep your spine neutral, and lift with your legs and hips, not just your lower back.",
	},
	{
		Topic:    "cardio",
		Keywords: []string{"cardio", "running", "treadmill"},
		Response: "Cardio is great for heart health and burning calories. For fat loss, try HIIT (sprints). For endurance, steady-state running or cycling is best. Do cardio AFTER weights for muscle preservation.",
	},

	// ============================================================================
	// LIFESTYLE
	// ============================================================================
	{
		Topic:    "recovery",
		Keywords: []string{"rest", "sleep", "recovery"},
		Response: "Muscles grow while you sleep! Aim for 7-9 hours of quality sleep. Overtraining can stall progress, so take at least 1-2 rest days per week.",
	},
	{
		Topic:    "motivation",
		Keywords: []string{"motivation", "tired", "give up", "hard"},
		Response: "Consistency > Intensity. Even a bad workout is better than no workout. Remember why you started! You're building a better version of yourself.",
	},
	{
		Topic:    "features",
		Keywords: []string{"features", "app", "website"},
		Response: "This app offers AI-generated Indian diet plans, workout schedules, progress tracking, and a 3D muscle map. Check your Dashboard for your personalized plan!",
	},
}
