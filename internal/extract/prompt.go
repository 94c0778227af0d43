package extract

import "fmt"

const systemPrompt = `You are an expert at extracting academic calendar events from syllabi. Your task is to find EVERY single date, deadline, exam, assignment, project, and important event mentioned in the syllabus. Be extremely thorough and comprehensive. Always return valid JSON.`

const userPromptFormat = `Extract ALL important dates, deadlines, exams, homework assignments, projects, and events from this syllabus. Read through the ENTIRE document carefully and extract EVERY date mentioned:

%s

Return a JSON object with this exact structure:
{
  "course": "Course code and name if found (e.g., 'CS 2120 - Discrete Math')",
  "events": [
    {
      "title": "Event title (e.g., 'Midterm Exam', 'Problem Set 3', 'Final Project Due')",
      "date": "ISO date string (YYYY-MM-DD)",
      "time": "Time if specified (e.g., '2:00 PM', '11:59 PM') or null",
      "type": "One of: 'Exam', 'Homework', 'Project', 'Other'",
      "description": "Brief description if available"
    }
  ]
}

CRITICAL RULES - READ CAREFULLY:
1. Extract EVERY date mentioned in the document - do not skip any
2. Look through the ENTIRE document, including course schedule sections, assignment sections, exam schedules, project deadlines, and any calendar or timeline information
3. Include ALL types of events: exams (midterms, finals, quizzes), homework assignments, projects and project milestones, paper deadlines, lab due dates, and any other deadlines
4. For dates without a year, infer from context: if the syllabus mentions a semester (e.g. Fall 2024, Spring 2025), use that year; if no year is specified, assume the current academic year
5. Classify each event as exactly one of the four types
6. If a date appears multiple times, include it once with the most complete information
7. Only include events with specific dates (not "TBD" or "To be announced")

IMPORTANT: This is a comprehensive extraction. You must find ALL dates, not just the first few.`

func buildUserPrompt(documentText string) string {
	return fmt.Sprintf(userPromptFormat, documentText)
}
