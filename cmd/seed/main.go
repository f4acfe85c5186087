package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/tessnimetteib/cv-generator-project2/internal/embedding"
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
	"github.com/tessnimetteib/cv-generator-project2/internal/repository"
	"github.com/tessnimetteib/cv-generator-project2/pkg/config"
	"github.com/tessnimetteib/cv-generator-project2/pkg/logger"
	"github.com/tessnimetteib/cv-generator-project2/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type seedEntry struct {
	title       string
	content     string
	profession  models.Profession
	section     models.CVSection
	contentType models.ContentType
}

var starterEntries = []seedEntry{
	{
		title:       "Backend API Achievement",
		content:     "Architected and deployed microservices handling 10M+ daily transactions using Django REST Framework, achieving 99.9% uptime",
		profession:  models.ProfessionBackendDeveloper,
		section:     models.SectionAchievement,
		contentType: models.ContentTypeAchievement,
	},
	{
		title:       "Performance Optimization",
		content:     "Optimized database queries and API response times, achieving 3x performance improvement and reducing infrastructure costs by $200K annually",
		profession:  models.ProfessionBackendDeveloper,
		section:     models.SectionAchievement,
		contentType: models.ContentTypeAchievement,
	},
	{
		title:       "Docker Implementation",
		content:     "Led containerization initiative using Docker, reducing deployment time by 60% and improving development velocity",
		profession:  models.ProfessionBackendDeveloper,
		section:     models.SectionAchievement,
		contentType: models.ContentTypeAchievement,
	},
	{
		title:       "Team Leadership",
		content:     "Mentored team of 3 junior developers, implementing code review process that reduced bugs by 40%",
		profession:  models.ProfessionManager,
		section:     models.SectionAchievement,
		contentType: models.ContentTypeAchievement,
	},
	{
		title:       "Frontend Development",
		content:     "Built responsive React component library with 50+ reusable components, improving development speed by 30%",
		profession:  models.ProfessionFrontendDeveloper,
		section:     models.SectionAchievement,
		contentType: models.ContentTypeAchievement,
	},
	{
		title:       "Senior Backend Summary",
		content:     "Results-driven Senior Backend Engineer with 6+ years of proven expertise architecting scalable microservices and leading technical initiatives. Specialized in Python, Django, and cloud technologies with track record of delivering high-performance solutions.",
		profession:  models.ProfessionBackendDeveloper,
		section:     models.SectionSummary,
		contentType: models.ContentTypeParagraph,
	},
	{
		title:       "Manager Summary",
		content:     "Strategic Engineering Manager with 8+ years of experience leading cross-functional teams in fast-paced environments. Proven expertise in building high-performing teams, delivering products on schedule, and driving technical excellence.",
		profession:  models.ProfessionManager,
		section:     models.SectionSummary,
		contentType: models.ContentTypeParagraph,
	},
	{
		title:       "Frontend Developer Summary",
		content:     "Creative Frontend Developer with 5+ years of experience building beautiful, responsive web applications using React and modern JavaScript. Passionate about user experience and clean code architecture.",
		profession:  models.ProfessionFrontendDeveloper,
		section:     models.SectionSummary,
		contentType: models.ContentTypeParagraph,
	},
	{
		title:       "Action Verb Best Practice",
		content:     "Always start achievement bullets with strong action verbs like: Architected, Designed, Implemented, Optimized, Led, Developed, Built, Managed, Coordinated, Orchestrated, Spearheaded, Transformed",
		profession:  models.ProfessionGeneral,
		section:     models.SectionResponsibility,
		contentType: models.ContentTypeBullet,
	},
	{
		title:       "Quantification Best Practice",
		content:     "Include specific metrics in achievements: percentages (40% improvement), numbers (10M+ users), time savings (60% reduction), cost savings ($200K), team size (team of 5)",
		profession:  models.ProfessionGeneral,
		section:     models.SectionResponsibility,
		contentType: models.ContentTypeBullet,
	},
	{
		title:       "Impact Best Practice",
		content:     "Frame achievements to show business impact: How did it help the company? How did it affect users? What was the measurable result?",
		profession:  models.ProfessionGeneral,
		section:     models.SectionResponsibility,
		contentType: models.ContentTypeBullet,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	embedder := embedding.NewClient(&cfg.Embedding, appLogger)

	appLogger.Info("Seeding knowledge base", zap.Int("entries", len(starterEntries)))

	for _, seed := range starterEntries {
		vec, err := embedder.Embed(ctx, seed.content)
		if err != nil {
			// Entries without embeddings still serve lexical search.
			appLogger.Warn("Failed to embed seed entry, storing without vector",
				zap.String("title", seed.title),
				zap.Error(err),
			)
			vec = nil
		}

		now := time.Now()
		entry := &models.KnowledgeEntry{
			ID:             uuid.New(),
			Title:          seed.title,
			Content:        seed.content,
			Profession:     seed.profession,
			CVSection:      seed.section,
			ContentType:    seed.contentType,
			Embedding:      vec,
			QualityScore:   0.9,
			WordCount:      len(strings.Fields(seed.content)),
			SourceDocument: "starter-set",
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := knowledgeRepo.Insert(ctx, entry); err != nil {
			appLogger.Fatal("Failed to insert seed entry",
				zap.String("title", seed.title),
				zap.Error(err),
			)
		}
	}

	appLogger.Info("Knowledge base seeding completed")
}
