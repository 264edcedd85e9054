package main

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type Profile struct {
	Name        string
	Headline    string
	Location    string
	LocationURL string
	Email       string
	Phone       string
	PhoneURL    template.URL
	GitHub      string
	LinkedIn    string
	Image       string
	About       string
}

type Education struct {
	Degree      string
	Institution string
	Period      string
	Grade       string
	InProgress  bool
}

type Experience struct {
	Role       string
	Company    string
	Period     string
	Location   string
	Highlights []string
}

type Publication struct {
	Title    string
	Authors  []string
	Venue    string
	Year     string
	Status   string
	Abstract string
	Tags     []string
	Link     string
}

type Project struct {
	Title       string
	Description string
	Tags        []string
	Features    []string
}

type Skill struct {
	Name  string
	Level int
}

type SkillGroup struct {
	Title  string
	Skills []Skill
}

type Certification struct {
	Title       string
	Issuer      string
	Period      string
	Description string
	Skills      []string
	Badge       string
}

var profile = Profile{
	Name:        "Om Ravindra Patil",
	Headline:    "Data Science Enthusiast | AI Engineer | Full-Stack Developer",
	Location:    "Newcastle Upon Tyne",
	LocationURL: "https://www.google.com/maps/place/Newcastle+upon+Tyne",
	Email:       "ompatil.uk@gmail.com",
	Phone:       "+44 7719555315",
	PhoneURL:    "tel:+447719555315",
	GitHub:      "https://github.com/Om-Ravindra-Patil",
	LinkedIn:    "https://www.linkedin.com/in/om-patil-nu",
	Image:       "/images/profile-image.jpeg",
	About: `Open to **collaboration**, research opportunities, and professional connections.
I work across data science, applied machine learning and full-stack development.`,
}

var educationData = []Education{
	{
		Degree:      "MSc Data Science",
		Institution: "Newcastle University",
		Period:      "Expected 2027",
		Grade:       "In Progress",
		InProgress:  true,
	},
	{
		Degree:      "B.E Artificial Intelligence and Data Science",
		Institution: "Rajiv Gandhi Institute of Technology",
		Period:      "2025",
		Grade:       "7.14 / 10 CGPA",
	},
	{
		Degree:      "Diploma in Computer Engineering",
		Institution: "Pravin Patil College of Diploma Engineering and Technology",
		Period:      "2022",
		Grade:       "86%",
	},
}

var experienceData = []Experience{
	{
		Role:     "Data Science Intern",
		Company:  "Prodigy Infotech",
		Period:   "Nov 2023 - Dec 2023",
		Location: "Remote",
		Highlights: []string{
			"Conducted data visualization and exploratory data analysis (EDA) on datasets like the Titanic dataset",
			"Built machine learning models, including a decision tree classifier for customer behavior prediction",
			"Analyzed sentiment analysis of social media data and traffic accident patterns with interactive dashboards",
		},
	},
	{
		Role:     "Data Analytics and Visualization Simulation",
		Company:  "Forage by Accenture",
		Period:   "June 2024 - July 2024",
		Location: "Virtual",
		Highlights: []string{
			"Learned to break down projects and understand client needs for aligned analysis",
			"Cleaned and prepared messy data, built models to uncover insights",
			"Created clear visualizations and presented findings to stakeholders effectively",
		},
	},
}

var publications = []Publication{
	{
		Title:   "Transformer-based Models in Code Summarization",
		Authors: []string{"Om R. Patil"},
		Venue:   "ICFTSEM-2025",
		Year:    "2025",
		Status:  "Published",
		Abstract: `Presented first survey paper on *Transformer-based Models in Code Summarization* at ICFTSEM-2025.
This comprehensive survey explores the application of transformer architectures in automated code
understanding and summarization.`,
		Tags: []string{"Transformers", "Code Summarization", "Survey Paper"},
		Link: "https://irjaeh.com/index.php/journal/article/view/593",
	},
	{
		Title:   "CODE SUMMARIZER: A TRANSFORMER – BASED APPROACH FOR AUTOMATED CODE UNDERSTANDING",
		Authors: []string{"Om R. Patil"},
		Venue:   "IJRAR",
		Year:    "2025",
		Status:  "Published",
		Abstract: `Published research paper in **IJRAR**, April 2025 Edition. This paper presents a novel
transformer-based approach for automated code understanding, leveraging state-of-the-art NLP
techniques to generate human-readable summaries of source code.`,
		Tags: []string{"Transformers", "NLP", "Code Understanding"},
		Link: "https://ijrar.org/viewfull.php?&p_id=IJRAR25B1024",
	},
}

var projectsData = []Project{
	{
		Title:       "Code Summarizer",
		Description: "Full-stack Code Summarization Tool using the `AutoCoder_6.7B` model",
		Tags:        []string{"React.js", "Transformers", "MongoDB", "NLP"},
		Features: []string{
			"Built web-based application for code summarization",
			"Implemented AutoCoder_6.7B model with Hugging Face",
			"Designed intuitive React.js interface",
			"Secure MongoDB storage for prompts and summaries",
		},
	},
	{
		Title:       "Heart Disease Prediction System",
		Description: "ML-powered web application for health risk assessment",
		Tags:        []string{"Python", "Machine Learning", "Flask/Django", "Random Forest"},
		Features: []string{
			"Predicts heart disease likelihood from user symptoms",
			"Data preprocessing and feature scaling implementation",
			"Logistic Regression and Random Forest models",
			"Interactive interface with real-time predictions",
		},
	},
}

var skillGroups = []SkillGroup{
	{
		Title: "Programming Languages",
		Skills: []Skill{
			{Name: "Python", Level: 90},
			{Name: "JavaScript", Level: 85},
			{Name: "React", Level: 88},
			{Name: "C++", Level: 75},
			{Name: "SQL", Level: 82},
		},
	},
	{
		Title: "Tools & Technologies",
		Skills: []Skill{
			{Name: "Git", Level: 85},
			{Name: "MongoDB", Level: 80},
			{Name: "Pandas", Level: 90},
			{Name: "NumPy", Level: 88},
			{Name: "scikit-learn", Level: 87},
			{Name: "Jupyter", Level: 85},
			{Name: "VS Code", Level: 90},
			{Name: "MS-Excel", Level: 78},
		},
	},
}

var certifications = []Certification{
	{
		Title:       "Certification in Data Science",
		Issuer:      "ACMEgrade",
		Period:      "Oct 2023 - Nov 2023",
		Description: "Comprehensive training covering data analysis, machine learning, and statistical modeling",
		Skills: []string{
			"Data Cleaning",
			"Exploratory Data Analysis (EDA)",
			"Predictive Modeling",
			"Data Storytelling",
		},
		Badge: "🏆",
	},
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// markdown renders trusted site copy. Raw HTML in the source is dropped since
// goldmark is not configured as unsafe.
func markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
