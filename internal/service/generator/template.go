package generator

import (
	"LearnHub/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minModules = 3
	maxModules = 5
)

// TemplateGenerator builds a fixed outline from keywords. Output depends only on the keywords.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func ModuleCount(keywords int) int {
	return min(max(keywords, minModules), maxModules)
}

func (g *TemplateGenerator) Generate(_ context.Context, req models.GenerateRequest) (*models.CourseStructure, error) {
	if len(req.Keywords) == 0 {
		return nil, fmt.Errorf("template generator: no keywords")
	}

	count := ModuleCount(len(req.Keywords))
	modules := make([]models.GeneratedModule, 0, count)
	for i := 0; i < count; i++ {
		keyword := req.Keywords[0]
		if i < len(req.Keywords) {
			keyword = req.Keywords[i]
		}

		quiz, err := json.Marshal(templateQuiz(keyword))
		if err != nil {
			return nil, fmt.Errorf("encode quiz: %w", err)
		}

		modules = append(modules, models.GeneratedModule{
			Title:       fmt.Sprintf("Chapter %d: %s", i+1, capitalize(keyword)),
			Description: fmt.Sprintf("Understand and master the concept of %s in depth", keyword),
			Materials: []models.GeneratedMaterial{
				{Title: "Introduction to " + keyword, Type: models.MaterialText, Content: introText(keyword)},
				{Title: "Basic Concepts of " + keyword, Type: models.MaterialText, Content: basicsText(keyword)},
				{Title: "Implementing " + keyword, Type: models.MaterialText, Content: implementationText(keyword)},
				{Title: "Quiz: " + keyword, Type: models.MaterialQuiz, Content: string(quiz)},
			},
		})
	}
	return &models.CourseStructure{Modules: modules}, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func introText(topic string) string {
	return strings.ReplaceAll(`# Introduction to {t}

## What is {t}?

{t} is one of the fundamental concepts in computer science. In this chapter we look at the basics of {t} and how it is applied in programming.

## Why does {t} matter?

Understanding {t} helps you:
- Write more efficient code
- Solve problems more systematically
- Follow advanced programming concepts

## Learning goals

After this material you should be able to:
1. Explain the basic idea of {t}
2. Recognise where {t} is used
3. Apply {t} in a small program`, "{t}", topic)
}

func basicsText(topic string) string {
	return strings.ReplaceAll(`# Basic Concepts of {t}

## Definition

{t} is a method or technique used to solve a particular class of problems efficiently.

## Properties of {t}

1. **Efficiency**: makes good use of resources
2. **Structure**: follows a systematic approach
3. **Reuse**: applies across many contexts

## A small example

`+"```"+`
// {t} example
function example() {
  console.log("Demonstrating {t}");
}
`+"```"+`

## Exercises

- Find a use case for {t}
- Write a small example
- List its strengths and weaknesses`, "{t}", topic)
}

func implementationText(topic string) string {
	return strings.ReplaceAll(`# Implementing {t}

## Steps

### 1. Preparation
Make sure the basic concepts are clear.

### 2. Design
Plan the structure of your implementation.

### 3. Coding
Write the code following established conventions.

### 4. Testing
Check the implementation against several test cases.

## Common pitfalls

- Overcomplicating the solution
- Ignoring edge cases
- Not considering performance

## Summary

{t} is a skill worth mastering. With practice you will be able to use it effectively.`, "{t}", topic)
}

func templateQuiz(topic string) models.Quiz {
	q := func(id int, question string, correct int, options ...string) models.QuizQuestion {
		return models.QuizQuestion{
			ID:            id,
			Question:      question,
			Type:          models.QuestionMultipleChoice,
			Options:       options,
			CorrectAnswer: correct,
		}
	}
	return models.Quiz{Questions: []models.QuizQuestion{
		q(1, fmt.Sprintf("What is the definition of %s?", topic), 0,
			fmt.Sprintf("A method for optimising %s", topic),
			"A basic programming technique",
			"A development framework",
			"A debugging tool"),
		q(2, fmt.Sprintf("Which of these is not a property of %s?", topic), 2,
			"Efficient", "Systematic", "Random", "Reusable"),
		q(3, fmt.Sprintf("When should you use %s?", topic), 0,
			"When an efficient solution is needed",
			"Only in large projects",
			"Never",
			"Only as a beginner"),
		q(4, fmt.Sprintf("What is the main benefit of %s?", topic), 1,
			"More complex code",
			"Better performance and resource use",
			"More bugs",
			"Slower development"),
		q(5, fmt.Sprintf("What is good practice when implementing %s?", topic), 2,
			"Write code as fast as possible",
			"Ignore edge cases",
			"Focus on readability and efficiency",
			"Copy code from the internet"),
	}}
}
