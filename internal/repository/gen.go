package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"NodeDashboard/internal/model"
	"NodeDashboard/pkg/errors"
	"NodeDashboard/storage/database"
)

// ========== RenderRun 相关查询接口 ==========

// RenderRunQuerier 渲染审计查询接口
type RenderRunQuerier interface {
	// ListRecent 最近的渲染记录，新的在前
	//
	// SELECT * FROM @@table
	// WHERE deleted_at IS NULL
	// ORDER BY started_at DESC, id DESC
	// LIMIT @limit
	ListRecent(limit int) ([]*gen.T, error)
}

// ========== ReconciliationAlert 相关查询接口 ==========

// ReconciliationAlertQuerier 对账告警查询接口
type ReconciliationAlertQuerier interface {
	// ListByDate 某日的全部告警，新的在前
	//
	// SELECT * FROM @@table
	// WHERE date = @date
	//   AND deleted_at IS NULL
	// ORDER BY created_at DESC, id DESC
	ListByDate(date string) ([]*gen.T, error)
}

func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	db := database.DB()
	if db == nil {
		return errors.DatabaseUnavailable
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query",
		ModelPkgPath:      "NodeDashboard/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 复用已有 model，不从表结构反向生成
	g.ApplyBasic(
		&model.RenderRun{},
		&model.ReconciliationAlert{},
	)

	g.ApplyInterface(func(RenderRunQuerier) {}, &model.RenderRun{})
	g.ApplyInterface(func(ReconciliationAlertQuerier) {}, &model.ReconciliationAlert{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
