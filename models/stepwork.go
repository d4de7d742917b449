package models

import "time"

// StepQuestion is one written-work prompt belonging to a step. The catalog
// is static and compiled in; answers are user data and live in the store.
type StepQuestion struct {
	Step   int    `json:"step"`
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// StepAnswer is a user's written answer to a catalog question. Answer is
// encrypted; Step and QuestionID stay plaintext so completion counts can be
// computed without decrypting anything.
type StepAnswer struct {
	ID         string    `json:"id"`
	Step       int       `json:"step"`
	QuestionID string    `json:"question_id"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StepCount is the answered/total pair for one step.
type StepCount struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// StepCatalog is the full static list of step-work questions. Question IDs
// are stable across releases; adding a question is a data change here plus
// nothing else.
var StepCatalog = []StepQuestion{
	{Step: 1, ID: "s1_q1", Prompt: "What does being powerless mean to you?"},
	{Step: 1, ID: "s1_q2", Prompt: "How has your life become unmanageable?"},
	{Step: 1, ID: "s1_q3", Prompt: "What have you lost to your addiction?"},
	{Step: 1, ID: "s1_q4", Prompt: "What does surrender mean to you today?"},
	{Step: 2, ID: "s2_q1", Prompt: "What does a power greater than yourself mean to you?"},
	{Step: 2, ID: "s2_q2", Prompt: "When have you felt restored to sanity, even briefly?"},
	{Step: 2, ID: "s2_q3", Prompt: "What gets in the way of believing change is possible?"},
	{Step: 3, ID: "s3_q1", Prompt: "What decisions are you still trying to control?"},
	{Step: 3, ID: "s3_q2", Prompt: "What would turning it over look like this week?"},
	{Step: 3, ID: "s3_q3", Prompt: "Write your own third-step commitment."},
	{Step: 4, ID: "s4_q1", Prompt: "List the resentments you carry and their roots."},
	{Step: 4, ID: "s4_q2", Prompt: "List your fears and how they have driven you."},
	{Step: 4, ID: "s4_q3", Prompt: "Where have you harmed others through self-will?"},
	{Step: 4, ID: "s4_q4", Prompt: "What are your assets, honestly stated?"},
	{Step: 5, ID: "s5_q1", Prompt: "What is hardest to admit out loud, and why?"},
	{Step: 5, ID: "s5_q2", Prompt: "Who do you trust to hear your inventory?"},
	{Step: 6, ID: "s6_q1", Prompt: "Which defects are you ready to let go of?"},
	{Step: 6, ID: "s6_q2", Prompt: "Which ones are you still holding on to, and why?"},
	{Step: 7, ID: "s7_q1", Prompt: "What does humility mean to you now?"},
	{Step: 7, ID: "s7_q2", Prompt: "Write your own seventh-step prayer or intention."},
	{Step: 8, ID: "s8_q1", Prompt: "List the people you have harmed."},
	{Step: 8, ID: "s8_q2", Prompt: "Which amends feel impossible today, and why?"},
	{Step: 9, ID: "s9_q1", Prompt: "Which amends can you make directly and when?"},
	{Step: 9, ID: "s9_q2", Prompt: "Where would a direct amends cause further harm?"},
	{Step: 10, ID: "s10_q1", Prompt: "What does a daily inventory look like for you?"},
	{Step: 10, ID: "s10_q2", Prompt: "How do you promptly admit when you are wrong?"},
	{Step: 11, ID: "s11_q1", Prompt: "What is your practice of prayer or meditation?"},
	{Step: 11, ID: "s11_q2", Prompt: "How do you listen for guidance?"},
	{Step: 12, ID: "s12_q1", Prompt: "How do you carry the message to others?"},
	{Step: 12, ID: "s12_q2", Prompt: "How do you practice these principles in all your affairs?"},
}

// QuestionsForStep returns the catalog questions belonging to step.
func QuestionsForStep(step int) []StepQuestion {
	var out []StepQuestion
	for _, q := range StepCatalog {
		if q.Step == step {
			out = append(out, q)
		}
	}
	return out
}

// StepTotals returns the per-step question totals derived from the catalog.
func StepTotals() map[int]int {
	totals := make(map[int]int, 12)
	for _, q := range StepCatalog {
		totals[q.Step]++
	}
	return totals
}
