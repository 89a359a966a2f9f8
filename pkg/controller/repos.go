package controller

import (
	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/repository/document"
)

// Repos bundles the typed repositories for every stored entity, all
// sharing one document client and one reference cache.
type Repos struct {
	Users          *document.Repository[models.User, *models.User]
	Jobs           *document.Repository[models.Job, *models.Job]
	Internships    *document.Repository[models.Internship, *models.Internship]
	Research       *document.Repository[models.Research, *models.Research]
	Challenges     *document.Repository[models.Challenge, *models.Challenge]
	Speakers       *document.Repository[models.Speaker, *models.Speaker]
	FYPs           *document.Repository[models.FYP, *models.FYP]
	Projects       *document.Repository[models.Project, *models.Project]
	Courses        *document.Repository[models.Course, *models.Course]
	Trainings      *document.Repository[models.Training, *models.Training]
	Collaborations *document.Repository[models.Collaboration, *models.Collaboration]
	Inquiries      *document.Repository[models.Inquiry, *models.Inquiry]
}

// NewRepos builds every repository over the shared client and cache.
func NewRepos(client document.Client, cache document.RefCache) *Repos {
	return &Repos{
		Users:          document.NewRepository[models.User](client, cache),
		Jobs:           document.NewRepository[models.Job](client, cache),
		Internships:    document.NewRepository[models.Internship](client, cache),
		Research:       document.NewRepository[models.Research](client, cache),
		Challenges:     document.NewRepository[models.Challenge](client, cache),
		Speakers:       document.NewRepository[models.Speaker](client, cache),
		FYPs:           document.NewRepository[models.FYP](client, cache),
		Projects:       document.NewRepository[models.Project](client, cache),
		Courses:        document.NewRepository[models.Course](client, cache),
		Trainings:      document.NewRepository[models.Training](client, cache),
		Collaborations: document.NewRepository[models.Collaboration](client, cache),
		Inquiries:      document.NewRepository[models.Inquiry](client, cache),
	}
}
