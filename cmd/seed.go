/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/piyushvishwakarma01/GearGuard/internal/config"
	"github.com/piyushvishwakarma01/GearGuard/internal/database"
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo data",
	Long: `Seed the database with a demo dataset:
a manager, technicians, one maintenance team, sample equipment
and a handful of maintenance requests in various states.
Intended for local development only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 连接并迁移数据库
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		// 3. 写入演示数据
		log.Println("Seeding demo data...")
		if err := seedDemoData(db); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}

		log.Println("Demo data seeded successfully!")
		return nil
	},
}

// seedDemoData 写入演示数据集
func seedDemoData(db *gorm.DB) error {
	manager := &model.UserModel{
		ID:       uuid.New().String(),
		FullName: "Demo Manager",
		Email:    "manager@example.com",
		Role:     model.RoleManager,
	}
	techA := &model.UserModel{
		ID:       uuid.New().String(),
		FullName: "Demo Technician A",
		Email:    "tech-a@example.com",
		Role:     model.RoleTechnician,
	}
	techB := &model.UserModel{
		ID:       uuid.New().String(),
		FullName: "Demo Technician B",
		Email:    "tech-b@example.com",
		Role:     model.RoleTechnician,
	}
	for _, user := range []*model.UserModel{manager, techA, techB} {
		if err := db.Create(user).Error; err != nil {
			return err
		}
	}

	team := &model.MaintenanceTeamModel{
		ID:          uuid.New().String(),
		Name:        "Mechanical Maintenance",
		Description: "Handles all mechanical equipment",
	}
	if err := db.Create(team).Error; err != nil {
		return err
	}
	for _, tech := range []*model.UserModel{techA, techB} {
		member := &model.TeamMemberModel{
			ID:       uuid.New().String(),
			TeamID:   team.ID,
			UserID:   tech.ID,
			JoinedAt: time.Now(),
		}
		if err := db.Create(member).Error; err != nil {
			return err
		}
	}

	equipment := &model.EquipmentModel{
		ID:                       uuid.New().String(),
		EquipmentName:            "CNC Milling Machine 3",
		SerialNumber:             "SN-DEMO-0003",
		Category:                 "CNC",
		PhysicalLocation:         "Workshop A",
		DefaultMaintenanceTeamID: team.ID,
	}
	if err := db.Create(equipment).Error; err != nil {
		return err
	}

	scheduled := time.Now().AddDate(0, 0, 7)
	requests := []*model.MaintenanceRequestModel{
		{
			ID:                uuid.New().String(),
			Subject:           "Spindle makes grinding noise",
			Description:       "Noise appears above 8000 RPM",
			RequestType:       model.RequestTypeCorrective,
			Priority:          model.PriorityHigh,
			Status:            string(workflow.StatusNew),
			EquipmentID:       equipment.ID,
			EquipmentCategory: equipment.Category,
			MaintenanceTeamID: team.ID,
			CreatedByUserID:   manager.ID,
		},
		{
			ID:                uuid.New().String(),
			Subject:           "Quarterly lubrication",
			Description:       "Scheduled preventive maintenance",
			RequestType:       model.RequestTypePreventive,
			Priority:          model.PriorityMedium,
			Status:            string(workflow.StatusNew),
			EquipmentID:       equipment.ID,
			EquipmentCategory: equipment.Category,
			MaintenanceTeamID: team.ID,
			CreatedByUserID:   manager.ID,
			ScheduledDate:     &scheduled,
		},
	}
	for _, req := range requests {
		if err := db.Create(req).Error; err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
}
