package ingest

// Canonical coverage field names for the criteria spreadsheet. The template
// renders each as a "<Section>: <Field Title> - Notes" column header.

var inPatientGeneralFields = []string{
  "annual_limit",
  "scope_of_coverage",
  "network",
  "geographic_coverage_elective",
  "geographic_coverage_emergency",
  "waiting_period",
  "non_direct_billing",
  "cold_case",
  "hospital_accommodation",
  "road_ambulance",
  "maternity_in_patient",
  "maternity_lab_test",
  "new_born",
  "nursery_incubator",
  "extra_bed_parent",
  "home_care",
  "plan_upgrade_downgrade",
  "passive_war",
  "payment_frequency",
  "pre_existing_conditions",
}

var inPatientCaseFields = []string{
  "physiotherapy",
  "work_related_injuries",
  "acute_allergy_treatments",
  "bariatric_surgeries",
  "breast_reconstruction",
  "chemotherapy_radiotherapy",
  "chronic_conditions",
  "congenital_cases_lifetime",
  "congenital_tests_thalassemia",
  "epidural",
  "epilepsy",
  "icu",
  "infertility_impotence_sterility",
  "laparoscopic_procedures",
  "migraines",
  "motorcycling",
  "organ_transplant",
  "polysomnography",
  "prosthesis_due_to_accident",
  "prosthesis_due_to_sickness",
  "rehabilitation",
  "renal_dialysis",
  "scoliosis",
  "std_excluding_hiv",
  "varicocele",
  "varicose_veins",
  "morgue_burial_expenses",
  "genetic_tests",
  "diagnostic_tests",
  "ambulatory_laboratory_exams",
  "doctor_visits_consultations",
  "prescribed_medicines_drugs",
}

// The last four overlap with the case list above; a column binds to the list
// whose section marker its header carries.
var outPatientFields = []string{
  "outpatient_annual_limit",
  "outpatient_coverage",
  "outpatient_network",
  "outpatient_deductible",
  "diagnostic_tests",
  "ambulatory_laboratory_exams",
  "doctor_visits_consultations",
  "prescribed_medicines_drugs",
}
