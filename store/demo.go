package store

import (
	"context"
	"time"

	"mgarquitectura/api-gateway/models"
)

// Demo is the offline content provider: the same read interface as the real
// store, backed by hardcoded records. It is selected at startup when Supabase
// is not configured, and serves as the read fallback when the backend fails.
// All writes are unsupported in demo mode.
type Demo struct {
	projects []models.Project
	slides   []models.HeroSlide
}

func NewDemo() *Demo {
	now := time.Now()
	return &Demo{
		projects: []models.Project{
			{
				ID:          "demo-1",
				Title:       "Casa Moderna en el Bosque",
				Description: "Un refugio contemporáneo que se fusiona con la naturaleza, utilizando materiales locales y un diseño sostenible que respeta el entorno natural.",
				Category:    "Residencial",
				Year:        "2024",
				Location:    "Punta del Este, Uruguay",
				Area:        "220 m²",
				IsFeatured:  true,
				Status:      models.StatusPublished,
				CreatedAt:   now,
				UpdatedAt:   now,
				Images: []models.ProjectImage{
					{
						ID:        "img-1",
						ProjectID: "demo-1",
						ImageURL:  "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?q=80&w=2070&auto=format&fit=crop",
						IsCover:   true,
						Order:     0,
					},
					{
						ID:        "img-2",
						ProjectID: "demo-1",
						ImageURL:  "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?q=80&w=2075&auto=format&fit=crop",
						Order:     1,
					},
				},
			},
			{
				ID:          "demo-2",
				Title:       "Oficinas Corporativas Minimalistas",
				Description: "Espacio de trabajo moderno y funcional que promueve la colaboración y la productividad en un ambiente inspirador.",
				Category:    "Comercial",
				Year:        "2024",
				Location:    "Montevideo, Uruguay",
				Area:        "320 m²",
				Status:      models.StatusPublished,
				CreatedAt:   now,
				UpdatedAt:   now,
				Images: []models.ProjectImage{
					{
						ID:        "img-3",
						ProjectID: "demo-2",
						ImageURL:  "https://images.unsplash.com/photo-1556761175-5973dc0f32e7?q=80&w=2232&auto=format&fit=crop",
						IsCover:   true,
						Order:     0,
					},
				},
			},
			{
				ID:          "demo-3",
				Title:       "Loft Industrial Renovado",
				Description: "Transformación de un espacio industrial en un moderno loft residencial, conservando elementos arquitectónicos originales.",
				Category:    "Residencial",
				Year:        "2023",
				Location:    "Montevideo, Uruguay",
				Area:        "180 m²",
				IsFeatured:  true,
				Status:      models.StatusPublished,
				CreatedAt:   now,
				UpdatedAt:   now,
				Images: []models.ProjectImage{
					{
						ID:        "img-4",
						ProjectID: "demo-3",
						ImageURL:  "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?q=80&w=2158&auto=format&fit=crop",
						IsCover:   true,
						Order:     0,
					},
				},
			},
		},
		slides: []models.HeroSlide{
			{
				ID:          "slide-1",
				Title:       "Diseño de Interiores",
				Description: "Espacios funcionales y estéticamente atractivos",
				ImageURL:    "https://images.unsplash.com/photo-1618220179428-22790b461013?q=80&w=2127&auto=format&fit=crop",
				Order:       1,
				CreatedAt:   now,
			},
			{
				ID:          "slide-2",
				Title:       "Arquitectura Residencial",
				Description: "Viviendas modernas que inspiran",
				ImageURL:    "https://images.unsplash.com/photo-1580587771525-78b9dba3b914?q=80&w=1974&auto=format&fit=crop",
				Order:       2,
				CreatedAt:   now,
			},
			{
				ID:          "slide-3",
				Title:       "Proyectos Comerciales",
				Description: "Diseño innovador para tu negocio",
				ImageURL:    "https://images.unsplash.com/photo-1556761175-5973dc0f32e7?q=80&w=2232&auto=format&fit=crop",
				Order:       3,
				CreatedAt:   now,
			},
		},
	}
}

func (d *Demo) ListPublished(ctx context.Context) ([]models.Project, error) {
	published := make([]models.Project, 0, len(d.projects))
	for _, p := range d.projects {
		if p.Status == models.StatusPublished {
			published = append(published, p)
		}
	}
	return published, nil
}

func (d *Demo) ListAll(ctx context.Context) ([]models.Project, error) {
	all := make([]models.Project, len(d.projects))
	copy(all, d.projects)
	return all, nil
}

func (d *Demo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	for i := range d.projects {
		if d.projects[i].ID == id {
			p := d.projects[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (d *Demo) ListSlides(ctx context.Context) ([]models.HeroSlide, error) {
	slides := make([]models.HeroSlide, len(d.slides))
	copy(slides, d.slides)
	return slides, nil
}
