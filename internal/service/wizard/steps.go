package wizard

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"fmt"
	"strings"
)

func stepError(action string, step models.WizardStep) error {
	return fmt.Errorf("%w: cannot %s at step %s", app_errors.ErrWizardStep, action, step)
}

// applyInfo moves a draft to the references step. Editing info from a later
// pre-save step drops the generated structure.
func applyInfo(d *models.CourseDraft, title, description string) error {
	if d.Step == models.StepDone {
		return stepError("edit info", d.Step)
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return fmt.Errorf("%w: title and description are required", app_errors.ErrWizardValidation)
	}
	d.Title = title
	d.Description = description
	if d.Step != models.StepInfo {
		d.Structure = nil
	}
	d.LastError = nil
	d.Step = models.StepReferences
	return nil
}

// NormalizeKeywords trims, drops empties and removes case-insensitive duplicates, keeping first-seen order.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		key := strings.ToLower(k)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, k)
	}
	return out
}

func checkReferences(d *models.CourseDraft, keywords []string) error {
	if d.Step != models.StepReferences {
		return stepError("submit references", d.Step)
	}
	if len(keywords) == 0 {
		return fmt.Errorf("%w: at least one keyword is required", app_errors.ErrWizardValidation)
	}
	return nil
}

func checkGenerate(d *models.CourseDraft) error {
	if d.Step != models.StepGenerate && d.Step != models.StepPreview {
		return stepError("generate", d.Step)
	}
	return nil
}

func checkSave(d *models.CourseDraft) error {
	if d.Step != models.StepPreview {
		return stepError("save", d.Step)
	}
	if d.Structure == nil || len(d.Structure.Modules) == 0 {
		return fmt.Errorf("%w: nothing generated to save", app_errors.ErrWizardValidation)
	}
	return nil
}

func applyBack(d *models.CourseDraft) error {
	switch d.Step {
	case models.StepReferences:
		d.Step = models.StepInfo
	case models.StepGenerate:
		d.Step = models.StepReferences
	case models.StepPreview:
		d.Step = models.StepGenerate
	default:
		return stepError("go back", d.Step)
	}
	d.LastError = nil
	return nil
}
