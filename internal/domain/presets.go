package domain

// PresetExercises is the global catalog seeded into an empty database.
// Presets have no owner (nil UserID) and are visible to every user.
var PresetExercises = []Exercise{
	{Name: "Barbell Squat", MuscleGroup: "Quads", Equipment: "Barbell"},
	{Name: "Romanian Deadlift", MuscleGroup: "Hamstrings", Equipment: "Barbell"},
	{Name: "Deadlift", MuscleGroup: "Back", Equipment: "Barbell"},
	{Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"},
	{Name: "Incline Dumbbell Press", MuscleGroup: "Chest", Equipment: "Dumbbell"},
	{Name: "Overhead Press", MuscleGroup: "Shoulders", Equipment: "Barbell"},
	{Name: "Lateral Raise", MuscleGroup: "Shoulders", Equipment: "Dumbbell"},
	{Name: "Barbell Row", MuscleGroup: "Back", Equipment: "Barbell"},
	{Name: "Lat Pulldown", MuscleGroup: "Back", Equipment: "Cable"},
	{Name: "Pull Up", MuscleGroup: "Back", Equipment: "Bodyweight"},
	{Name: "Barbell Curl", MuscleGroup: "Biceps", Equipment: "Barbell"},
	{Name: "Hammer Curl", MuscleGroup: "Biceps", Equipment: "Dumbbell"},
	{Name: "Triceps Pushdown", MuscleGroup: "Triceps", Equipment: "Cable"},
	{Name: "Skullcrusher", MuscleGroup: "Triceps", Equipment: "Barbell"},
	{Name: "Leg Press", MuscleGroup: "Quads", Equipment: "Machine"},
	{Name: "Leg Curl", MuscleGroup: "Hamstrings", Equipment: "Machine"},
	{Name: "Calf Raise", MuscleGroup: "Calves", Equipment: "Machine"},
	{Name: "Hip Thrust", MuscleGroup: "Glutes", Equipment: "Barbell"},
	{Name: "Cable Crunch", MuscleGroup: "Abs", Equipment: "Cable"},
	{Name: "Face Pull", MuscleGroup: "Rear Delts", Equipment: "Cable"},
}
